package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-dem/dem"
	"github.com/robert-malhotra/go-dem/grid"
)

// ErrNoFootprint is returned for a file whose header has no corner
// coordinates.
var ErrNoFootprint = errors.New("header has no corner coordinates")

// Extensions lists the file name suffixes BuildFromDir picks up.
var Extensions = []string{".dem", ".dem.gz", ".dem.zst"}

// Entry is the indexed metadata of one DEM file.
type Entry struct {
	Path   string    `json:"path"`
	Name   string    `json:"name"`
	RefSys int       `json:"ref_sys"` // 0 geographic, 1 UTM, 2 state plane
	Zone   int       `json:"zone"`
	Unit   grid.Unit `json:"unit"` // horizontal unit of Bounds
	Bounds Bounds    `json:"bounds"`
}

// Index answers "which files cover this area" over a set of DEM files. Files
// in different reference systems or zones share one index, so callers
// usually filter results by RefSys and Zone.
type Index struct {
	entries []Entry
	rtree   *rtreego.Rtree
}

type indexedEntry struct {
	i      int
	bounds Bounds
}

func (e *indexedEntry) Bounds() rtreego.Rect {
	return e.bounds.rect()
}

type options struct {
	logger     log.Logger
	workers    int
	skipErrors bool
	demOpts    []dem.Option
}

// Option configures Build.
type Option func(*options)

// WithLogger sets the logger. Skipped files are logged at warn level.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers sets how many headers are read concurrently. The default is
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithSkipErrors makes Build skip files it cannot read instead of failing.
func WithSkipErrors() Option {
	return func(o *options) {
		o.skipErrors = true
	}
}

// WithDecoderOptions passes options to dem.Open for every file.
func WithDecoderOptions(opts ...dem.Option) Option {
	return func(o *options) {
		o.demOpts = append(o.demOpts, opts...)
	}
}

// Build reads the header of every path and indexes its footprint.
func Build(ctx context.Context, paths []string, opts ...Option) (*Index, error) {
	o := &options{
		logger:  log.NewNopLogger(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(o)
	}

	entries := make([]*Entry, len(paths))
	var mu sync.Mutex
	var skipped int

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e, err := readEntry(path, o.demOpts)
			if err != nil {
				if !o.skipErrors {
					return fmt.Errorf("%s: %w", path, err)
				}
				level.Warn(o.logger).Log("msg", "skipping file", "path", path, "err", err)
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &Index{rtree: rtreego.NewTree(2, 25, 50)}
	for _, e := range entries {
		if e == nil {
			continue
		}
		idx.entries = append(idx.entries, *e)
		idx.rtree.Insert(&indexedEntry{i: len(idx.entries) - 1, bounds: e.Bounds})
	}
	level.Debug(o.logger).Log("msg", "catalog built", "files", len(idx.entries), "skipped", skipped)
	return idx, nil
}

// BuildFromDir indexes every file under dir whose name ends in one of
// Extensions.
func BuildFromDir(ctx context.Context, dir string, opts ...Option) (*Index, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		for _, ext := range Extensions {
			if strings.HasSuffix(name, ext) {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return Build(ctx, paths, opts...)
}

func readEntry(path string, opts []dem.Option) (*Entry, error) {
	f, err := dem.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := f.Header()
	if err != nil {
		return nil, err
	}
	b, ok := cornerBounds(h)
	if !ok {
		return nil, ErrNoFootprint
	}

	return &Entry{
		Path:   path,
		Name:   h.FileName,
		RefSys: int(h.RefSys.Or(0)),
		Zone:   int(h.RefSysZone.Or(0)),
		Unit:   dem.UnitFromCode(h.HorizontalUnit),
		Bounds: b,
	}, nil
}

// Len returns the number of indexed files.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// All returns every entry in input order.
func (idx *Index) All() []Entry {
	return idx.entries
}

// Query returns the entries whose footprint intersects b, ordered by path.
func (idx *Index) Query(b Bounds) []Entry {
	var result []Entry
	for _, s := range idx.rtree.SearchIntersect(b.rect()) {
		e := idx.entries[s.(*indexedEntry).i]
		// The tree pads degenerate rectangles; filter on the exact bounds.
		if e.Bounds.Intersects(b) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

// Covering returns the entries whose footprint contains the point (x, y).
func (idx *Index) Covering(x, y float64) []Entry {
	return idx.Query(Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y})
}
