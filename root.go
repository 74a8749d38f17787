// Package sky implements access to the resource archive of Revolution
// Software's Beneath a Steel Sky.
//
// The game keeps every asset in a single packed data file, sky.dsk, indexed
// by a directory table in sky.dnr. Entries may carry a 22-byte header and
// their payload may be packed with RNC1, a Huffman and LZ77 scheme from Rob
// Northen's ProPack.
package sky

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/32bitkid/sky/decompression"
	"github.com/32bitkid/sky/resource"
	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DirectoryFile = "sky.dnr"
	DataFile      = "sky.dsk"

	defaultCacheSize = 64
)

var (
	ErrMissingFile = errors.New("missing archive file")
	ErrNotFound    = errors.New("resource not found")
)

// Root is an opened archive. Its methods are safe for concurrent use.
type Root struct {
	Directory     resource.Directory
	Decompressors decompression.LUT

	data        io.ReaderAt
	closer      io.Closer
	log         logrus.FieldLogger
	parallelism int
	cacheSize   int

	mu    sync.Mutex
	cache *tinylfu.T[resource.Number, *resource.Resource]
}

type Option func(*Root)

func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Root) { r.log = log }
}

// WithCacheSize bounds the number of decoded resources kept by Resource.
func WithCacheSize(n int) Option {
	return func(r *Root) { r.cacheSize = n }
}

// WithParallelism bounds the number of resources Walk decodes at once.
func WithParallelism(n int) Option {
	return func(r *Root) { r.parallelism = n }
}

func WithDecompressors(lut decompression.LUT) Option {
	return func(r *Root) { r.Decompressors = lut }
}

// Open opens the archive in the folder at path. path may also name any file
// inside that folder. File names are matched without regard to case.
func Open(path string, opts ...Option) (*Root, error) {
	folder, err := archiveFolder(path)
	if err != nil {
		return nil, err
	}

	dnrPath, err := locate(folder, DirectoryFile)
	if err != nil {
		return nil, err
	}
	dskPath, err := locate(folder, DataFile)
	if err != nil {
		return nil, err
	}

	dnr, err := os.Open(dnrPath)
	if err != nil {
		return nil, err
	}
	defer dnr.Close()

	dsk, err := os.Open(dskPath)
	if err != nil {
		return nil, err
	}

	root, err := New(bufio.NewReader(dnr), dsk, opts...)
	if err != nil {
		dsk.Close()
		return nil, err
	}
	root.closer = dsk

	return root, nil
}

// New reads the directory from dnr and serves resources out of dsk.
func New(dnr io.Reader, dsk io.ReaderAt, opts ...Option) (*Root, error) {
	root := &Root{
		Decompressors: decompression.Decompressors,
		data:          dsk,
		log:           logrus.StandardLogger(),
		parallelism:   runtime.GOMAXPROCS(0),
		cacheSize:     defaultCacheSize,
	}
	for _, opt := range opts {
		opt(root)
	}

	dir, err := resource.ReadDirectory(dnr)
	if err != nil {
		return nil, err
	}
	root.Directory = dir

	if root.cacheSize > 0 {
		root.cache = tinylfu.New[resource.Number, *resource.Resource](root.cacheSize, root.cacheSize*10, hashNumber)
	}

	root.log.WithField("entries", len(dir)).Debug("loaded directory")
	return root, nil
}

func (r *Root) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Mapping returns a lazily loaded handle to the resource numbered n.
func (r *Root) Mapping(n resource.Number) (resource.Mapping, error) {
	e, ok := r.Directory.Find(n)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, n)
	}
	return &diskMapping{root: r, entry: e}, nil
}

// Resource loads and decodes the resource numbered n.
func (r *Root) Resource(n resource.Number) (*resource.Resource, error) {
	m, err := r.Mapping(n)
	if err != nil {
		return nil, err
	}
	return m.Resource()
}

func (r *Root) cached(e resource.Entry) (*resource.Resource, error) {
	if r.cache == nil {
		return r.load(e)
	}

	r.mu.Lock()
	res, ok := r.cache.Get(e.Number)
	r.mu.Unlock()
	if ok {
		return res, nil
	}

	res, err := r.load(e)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache.Add(e.Number, res)
	r.mu.Unlock()

	return res, nil
}

func (r *Root) load(e resource.Entry) (*resource.Resource, error) {
	raw, err := resource.ReadEntryAt(r.data, e)
	if err != nil {
		return nil, err
	}

	res, err := resource.Parse(e, raw, r.Decompressors)
	if err != nil {
		return nil, err
	}

	if res.DecodeErr != nil {
		r.log.WithFields(logrus.Fields{
			"number": e.Number,
			"offset": e.Offset,
			"size":   e.Size,
		}).WithError(res.DecodeErr).Warn("decompression failed, keeping raw payload")
	}

	return res, nil
}

// Walk decodes every entry and hands the results to fn in directory order.
// Entries are decoded concurrently, each through its own section of the
// data file. The first error from decoding or from fn stops the walk.
func (r *Root) Walk(ctx context.Context, fn func(*resource.Resource) error) error {
	results := make([]*resource.Resource, len(r.Directory))

	g, ctx := errgroup.WithContext(ctx)
	if r.parallelism > 0 {
		g.SetLimit(r.parallelism)
	}
	for i, e := range r.Directory {
		i, e := i, e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.load(e)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		if err := fn(res); err != nil {
			return err
		}
	}
	return nil
}

func archiveFolder(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return path, nil
	}
	return filepath.Dir(path), nil
}

func locate(folder, name string) (string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), name) {
			return filepath.Join(folder, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %s not found in %s", ErrMissingFile, name, folder)
}

func hashNumber(n resource.Number) uint64 {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(n))
	return xxhash.Sum64(b[:])
}

// Raw returns the undecoded bytes of an entry, header included.
func (r *Root) Raw(e resource.Entry) ([]byte, error) {
	return resource.ReadEntryAt(r.data, e)
}
