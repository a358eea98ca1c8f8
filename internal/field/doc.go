// Package field provides fixed-width text field decoding for DEM file parsing.
//
// DEM files are written as Fortran-style fixed-format records: every value
// occupies a declared number of bytes, padded with blanks, with no separators
// or length prefixes. This package wraps an [io.ReaderAt] in a [Reader] that
// keeps a bounded lookahead window over the stream and decodes one field at a
// time.
//
// # Field Semantics
//
// Every decode consumes exactly the declared width, whether or not the content
// is well-formed. A field made entirely of blanks is "absent" and decodes to
// an empty [Optional]; it never decodes to zero. Non-blank content that does
// not parse returns an [*Error] that unwraps to [ErrMalformed].
//
//	Decoder    | Blank field   | Accepted forms
//	-----------|---------------|-----------------------------------------
//	String     | ""            | any bytes, trailing blanks trimmed
//	Char       | absent        | one non-blank byte
//	IntN       | absent        | "  42", "-7    ", "+13"
//	FloatN     | absent        | "1.5E+03", "0.15D+04", "1.5+03", "12."
//
// # Lookahead
//
// [Reader.Fill] and [Reader.Buffered] let callers ask how many bytes are left
// ahead of the cursor without consuming them. The record iterator uses this
// to recognise the fixed-size trailer at the end of a file.
package field
