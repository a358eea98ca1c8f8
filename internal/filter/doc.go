// Package filter removes the compression wrapping that DEM archives are
// commonly distributed in.
//
// The record decoder needs random access and the total stream size to find
// the statistics trailer, so compressed input is decompressed into memory
// before decoding. Formats are recognised by their leading magic bytes, not
// by file extension.
//
// # Supported Formats
//
//	Format | Magic         | Filter
//	-------|---------------|---------
//	gzip   | 1f 8b         | [Gzip]
//	zlib   | 78 01/5e/9c/da| [Zlib]
//	zstd   | 28 b5 2f fd   | [Zstd]
//
// All three use github.com/klauspost/compress. Uncompressed DEM data starts
// with a blank-padded text file name and is never mistaken for one of these.
//
// # Pipeline
//
// A [Pipeline] removes layers until the content is no longer recognised,
// so a zstd file that was gzipped again decodes in two steps:
//
//	p := filter.NewPipeline(0, 0)
//	data, err := p.Decode(raw)
//	fmt.Println(p.Layers()) // [gzip zstd]
//
// Every layer is bounded by the pipeline's maximum size; exceeding it returns
// [ErrTooLarge].
package filter
