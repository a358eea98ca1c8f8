// Package record decodes the three record types of a USGS Digital Elevation
// Model file and sequences them with an [Iterator].
//
// A DEM file is a series of 1024-byte blocks:
//
//	Block(s)        | Record
//	----------------|--------------------------------------------------
//	0               | Header (type A): metadata for the whole grid
//	1 .. n          | Profiles (type B): one column of elevation samples,
//	                | one or more blocks each
//	last (optional) | Statistics (type C): accuracy figures, present only
//	                | when the header's validation flag is set
//
// There is no record count or length prefix for profiles. The [Iterator]
// finds the end of the profile sequence by recognising that exactly one
// trailer-sized block remains.
//
// # Decoding
//
// [ReadHeader], [ReadProfile] and [ReadStatistics] decode one record from a
// [field.Reader] at its current position. Every field consumes its declared
// width even when blank, so the cursor always ends on the record boundary.
//
// # Encoding
//
// [WriteHeader], [WriteProfile] and [WriteStatistics] produce the same layout
// and are mostly used to build fixtures.
package record
