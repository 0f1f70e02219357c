// Package catalog holds the static feat and heritage tables.
//
// The tables are authored as YAML under data/ and embedded in the binary.
// A Catalog is immutable once built and safe for concurrent reads.
package catalog

import (
	"bytes"
	"embed"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	featsFile     = "data/feats.yaml"
	heritagesFile = "data/heritages.yaml"
)

type featsDoc struct {
	Feats []*Feat `yaml:"feats"`
}

type heritagesDoc struct {
	Heritages []*Heritage `yaml:"heritages"`
}

// Catalog indexes feats and heritages by name
type Catalog struct {
	feats     map[string]*Feat
	heritages map[string]*Heritage

	featNames     []string
	heritageNames []string
}

// Load builds the catalog from the embedded tables
func Load() (*Catalog, error) {
	return LoadFS(dataFS)
}

// LoadFS builds a catalog from data/feats.yaml and data/heritages.yaml in fsys
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var feats featsDoc
	if err := decodeFile(fsys, featsFile, &feats); err != nil {
		return nil, err
	}

	var heritages heritagesDoc
	if err := decodeFile(fsys, heritagesFile, &heritages); err != nil {
		return nil, err
	}

	return New(feats.Feats, heritages.Heritages)
}

func decodeFile(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode %s", name)
	}
	return nil
}

// New indexes the given entries. Names must be present and unique.
func New(feats []*Feat, heritages []*Heritage) (*Catalog, error) {
	c := &Catalog{
		feats:     make(map[string]*Feat, len(feats)),
		heritages: make(map[string]*Heritage, len(heritages)),
	}

	for _, f := range feats {
		if f == nil || f.Name == "" {
			return nil, errors.InvalidArgument("feat name is required")
		}
		if _, dup := c.feats[f.Name]; dup {
			return nil, errors.InvalidArgumentf("duplicate feat %q", f.Name)
		}
		c.feats[f.Name] = f
		c.featNames = append(c.featNames, f.Name)
	}

	for _, h := range heritages {
		if h == nil || h.Name == "" {
			return nil, errors.InvalidArgument("heritage name is required")
		}
		if _, dup := c.heritages[h.Name]; dup {
			return nil, errors.InvalidArgumentf("duplicate heritage %q", h.Name)
		}
		c.heritages[h.Name] = h
		c.heritageNames = append(c.heritageNames, h.Name)
	}

	sort.Strings(c.featNames)
	sort.Strings(c.heritageNames)

	return c, nil
}

// MustLoad is Load for program start-up and tests; it panics on bad data
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Feat looks up a feat by name
func (c *Catalog) Feat(name string) (*Feat, bool) {
	f, ok := c.feats[name]
	return f, ok
}

// Heritage looks up a heritage by name
func (c *Catalog) Heritage(name string) (*Heritage, bool) {
	h, ok := c.heritages[name]
	return h, ok
}

// Feats returns every feat sorted by name
func (c *Catalog) Feats() []*Feat {
	out := make([]*Feat, 0, len(c.featNames))
	for _, name := range c.featNames {
		out = append(out, c.feats[name])
	}
	return out
}

// Heritages returns every heritage sorted by name
func (c *Catalog) Heritages() []*Heritage {
	out := make([]*Heritage, 0, len(c.heritageNames))
	for _, name := range c.heritageNames {
		out = append(out, c.heritages[name])
	}
	return out
}
