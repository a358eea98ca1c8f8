// Package dem decodes USGS Digital Elevation Model files into elevation
// grids.
//
// A DEM file is a header block, one or more profile records (one column of
// elevation samples each) and an optional statistics block at the end.
// Records are Fortran fixed-format text in 1024-byte blocks.
//
// # Reading Records
//
//	f, err := dem.Open("rainier.dem")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	h, _ := f.Header()
//	for p, err := range f.Profiles() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(p.Column, len(p.Elevations))
//	}
//
// Every numeric header field is an [Optional]: blank fields are absent,
// which is different from zero.
//
// # Building a Grid
//
// [Decoder.ReadGrid] turns the profiles into a [grid.Grid]. Profiles become
// grid rows and their samples grid columns. Elevations are computed as
// (base + sample × z resolution), converted to the unit requested with
// [WithUnit]:
//
//	g, err := f.ReadGrid(dem.WithUnit(grid.Meters))
//
// Void samples keep the raw sentinel (-32767, scaled by the unit factor) and
// the grid reports that value as its unknown elevation. With
// [WithMissingMask] they are flagged in the grid's mask instead.
//
// Samples that fall outside the extent declared by the header are dropped
// and logged; [WithStrictExtent] turns them into an [*ExtentError].
//
// # Compressed Input
//
// [Open] recognises gzip, zlib and zstd input by its magic bytes and
// decompresses it into memory first. [NewDecoder] reads any [io.ReaderAt]
// of known size directly.
//
// # Errors
//
// Decode failures wrap [ErrTruncatedInput], [ErrMalformedField] or
// [ErrMissingHeader]. Malformed fields are reported as a [*FieldError]
// carrying the byte offset and width of the field. Decoding never resumes
// after an error.
//
// # Observability
//
// [WithLogger] takes a go-kit logger and [WithMetrics] a [Metrics] created
// with [NewMetrics].
package dem
