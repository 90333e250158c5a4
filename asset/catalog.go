package asset

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
)

// ErrUnknownAsset is returned for names absent from the catalog
var ErrUnknownAsset = errors.New("asset: unknown asset")

// Visual is the drawable handle of a body
type Visual struct {
	Name     string `toml:"-"`
	Glyph    string `toml:"glyph"`
	Color    string `toml:"color"`
	Emissive bool   `toml:"emissive"`
}

// Card is the content of a body's info label
type Card struct {
	Title string
}

// Loader resolves named visuals and info cards asynchronously
type Loader interface {
	LoadVisual(name string) *Pending[Visual]
	LoadCard(title string) *Pending[Card]
}

// Recorder observes load outcomes, e.g. for metrics
type Recorder interface {
	AssetLoaded(kind, result string)
}

type catalogFile struct {
	Visuals map[string]Visual `toml:"visuals"`
}

// Catalog is a Loader backed by a decoded TOML table
type Catalog struct {
	visuals  map[string]Visual
	latency  time.Duration
	logger   hclog.Logger
	recorder Recorder
}

// CatalogOption configures a Catalog
type CatalogOption func(*Catalog)

// WithLatency delays every load, standing in for I/O in demos and tests
func WithLatency(d time.Duration) CatalogOption {
	return func(c *Catalog) { c.latency = d }
}

// WithLogger sets the catalog logger
func WithLogger(l hclog.Logger) CatalogOption {
	return func(c *Catalog) { c.logger = l }
}

// WithRecorder sets the load outcome recorder
func WithRecorder(r Recorder) CatalogOption {
	return func(c *Catalog) { c.recorder = r }
}

// ParseCatalog decodes a catalog from TOML
func ParseCatalog(data string, opts ...CatalogOption) (*Catalog, error) {
	var f catalogFile
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("asset: parse catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("asset: unknown catalog keys %v", undecoded)
	}

	c := &Catalog{
		visuals: make(map[string]Visual, len(f.Visuals)),
		logger:  hclog.NewNullLogger(),
	}
	for name, v := range f.Visuals {
		if v.Glyph == "" {
			return nil, fmt.Errorf("asset: visual %q has no glyph", name)
		}
		v.Name = name
		c.visuals[name] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// LoadCatalogFile parses a catalog from disk
func LoadCatalogFile(path string, opts ...CatalogOption) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("asset: read catalog: %w", err)
	}
	return ParseCatalog(string(data), opts...)
}

// DefaultCatalog returns the built-in catalog
func DefaultCatalog(opts ...CatalogOption) *Catalog {
	c, err := ParseCatalog(DefaultCatalogTOML, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Names lists catalog entries in sorted order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.visuals))
	for name := range c.visuals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadVisual resolves a named visual on a background goroutine
func (c *Catalog) LoadVisual(name string) *Pending[Visual] {
	return Go(func() (Visual, error) {
		c.wait()
		v, ok := c.visuals[name]
		if !ok {
			c.record("visual", "failed")
			c.logger.Warn("visual not in catalog", "name", name)
			return Visual{}, fmt.Errorf("%w: visual %q", ErrUnknownAsset, name)
		}
		c.record("visual", "ready")
		return v, nil
	})
}

// LoadCard builds an info card for title on a background goroutine
func (c *Catalog) LoadCard(title string) *Pending[Card] {
	return Go(func() (Card, error) {
		c.wait()
		if title == "" {
			c.record("card", "failed")
			return Card{}, fmt.Errorf("%w: card without title", ErrUnknownAsset)
		}
		c.record("card", "ready")
		return Card{Title: title}, nil
	})
}

func (c *Catalog) wait() {
	if c.latency > 0 {
		time.Sleep(c.latency)
	}
}

func (c *Catalog) record(kind, result string) {
	if c.recorder != nil {
		c.recorder.AssetLoaded(kind, result)
	}
}
