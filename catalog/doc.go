// Package catalog indexes the footprints of many DEM files so the files
// covering a point or area can be found without decoding them.
//
// Only headers are read. A footprint is the bounding box of the four
// quadrangle corners in the file's ground units, and footprints are kept in
// an R-tree:
//
//	idx, err := catalog.BuildFromDir(ctx, "/data/dem", catalog.WithSkipErrors())
//	if err != nil {
//	    return err
//	}
//	for _, e := range idx.Covering(594000, 5182000) {
//	    fmt.Println(e.Path, e.Zone)
//	}
package catalog
