// Package prototype loads entity templates from YAML
package prototype

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownPrototype is returned by Get for ids not present in the registry
	ErrUnknownPrototype = errors.New("unknown prototype")

	// ErrInvalidPrototype wraps validation failures during Load
	ErrInvalidPrototype = errors.New("invalid prototype")
)

//go:embed default.yaml
var defaultYAML []byte

// Prototype describes the components an entity is spawned with
type Prototype struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	Glyph     string       `yaml:"glyph"`
	Vehicle   *VehicleSpec `yaml:"vehicle"`
	Access    []string     `yaml:"access"`
	Hands     int          `yaml:"hands"`
	Buckle    bool         `yaml:"buckle"`
	Strap     *StrapSpec   `yaml:"strap"`
	MobMover  bool         `yaml:"mobMover"`
	Container []string     `yaml:"container"`
}

// VehicleSpec configures the vehicle component
type VehicleSpec struct {
	HornSound     string `yaml:"hornSound"`
	SirenSound    string `yaml:"sirenSound"`
	RequiredHands int    `yaml:"requiredHands"`
	Seat          string `yaml:"seat"` // Empty selects the default seat container
}

// StrapSpec configures buckle capacity
type StrapSpec struct {
	MaxBuckled int `yaml:"maxBuckled"`
}

// Rune returns the display glyph, '?' when unset
func (p *Prototype) Rune() rune {
	for _, r := range p.Glyph {
		return r
	}
	return '?'
}

type document struct {
	Prototypes []Prototype `yaml:"prototypes"`
}

// Registry holds prototypes by id, preserving file order
type Registry struct {
	byID  map[string]*Prototype
	order []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Prototype)}
}

// Load decodes a prototype document
// Unknown fields, duplicate ids and negative counts are rejected
func Load(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode prototypes: %w", err)
	}

	reg := NewRegistry()
	for i := range doc.Prototypes {
		p := doc.Prototypes[i]
		if err := validate(&p); err != nil {
			return nil, err
		}
		if _, dup := reg.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidPrototype, p.ID)
		}
		reg.put(&p)
	}
	return reg, nil
}

// LoadFile reads a prototype document from disk
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prototypes: %w", err)
	}
	defer f.Close()

	reg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Default returns the built-in prototype set
func Default() *Registry {
	reg, err := Load(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded prototypes: %v", err))
	}
	return reg
}

// Get returns the prototype for id
func (r *Registry) Get(id string) (*Prototype, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrototype, id)
	}
	return p, nil
}

// IDs returns prototype ids in load order
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of prototypes
func (r *Registry) Len() int {
	return len(r.order)
}

// Merge copies every prototype of other into r, replacing same ids
func (r *Registry) Merge(other *Registry) {
	for _, id := range other.order {
		r.put(other.byID[id])
	}
}

func (r *Registry) put(p *Prototype) {
	if _, exists := r.byID[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.byID[p.ID] = p
}

func validate(p *Prototype) error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPrototype)
	}
	if p.Hands < 0 {
		return fmt.Errorf("%w: %s: negative hands", ErrInvalidPrototype, p.ID)
	}
	if p.Vehicle != nil && p.Vehicle.RequiredHands < 0 {
		return fmt.Errorf("%w: %s: negative requiredHands", ErrInvalidPrototype, p.ID)
	}
	if p.Strap != nil && p.Strap.MaxBuckled < 0 {
		return fmt.Errorf("%w: %s: negative maxBuckled", ErrInvalidPrototype, p.ID)
	}
	return nil
}
