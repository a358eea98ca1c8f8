package filter

import (
	"fmt"
)

const (
	// DefaultMaxSize bounds the decompressed size of one file. The largest
	// DEM quadrangles are a few tens of megabytes.
	DefaultMaxSize = 1 << 30

	// DefaultMaxLayers bounds how many nested compression layers are
	// removed.
	DefaultMaxLayers = 4
)

// Pipeline removes compression layers from a buffer until its content is no
// longer recognised as compressed.
type Pipeline struct {
	maxSize   int64
	maxLayers int
	layers    []Format
}

// NewPipeline creates a pipeline. A maxSize or maxLayers <= 0 selects the
// default.
func NewPipeline(maxSize int64, maxLayers int) *Pipeline {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if maxLayers <= 0 {
		maxLayers = DefaultMaxLayers
	}
	return &Pipeline{maxSize: maxSize, maxLayers: maxLayers}
}

// Decode detects and removes compression layers, outermost first. Data that
// is not compressed is returned unchanged.
func (p *Pipeline) Decode(input []byte) ([]byte, error) {
	p.layers = p.layers[:0]
	data := input

	for {
		format := Detect(data)
		if format == FormatNone {
			return data, nil
		}
		if len(p.layers) == p.maxLayers {
			return nil, fmt.Errorf("more than %d nested compression layers", p.maxLayers)
		}
		f, err := New(format)
		if err != nil {
			return nil, err
		}
		data, err = f.Decode(data, p.maxSize)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", len(p.layers), format, err)
		}
		p.layers = append(p.layers, format)
	}
}

// Layers returns the formats removed by the last Decode, outermost first.
func (p *Pipeline) Layers() []Format {
	return p.layers
}

// Empty returns true if the last Decode removed nothing.
func (p *Pipeline) Empty() bool {
	return len(p.layers) == 0
}

// Len returns the number of layers removed by the last Decode.
func (p *Pipeline) Len() int {
	return len(p.layers)
}
