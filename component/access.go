package component

import "sort"

// AccessComponent holds access tags granted by an entity
// Worn/held ID cards and vehicles carry it; tag sets are shared by reference
type AccessComponent struct {
	Tags map[string]struct{}
}

// NewAccessComponent builds an access component from tag names
func NewAccessComponent(tags ...string) AccessComponent {
	c := AccessComponent{Tags: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		c.Tags[t] = struct{}{}
	}
	return c
}

// Has checks for a single tag
func (a AccessComponent) Has(tag string) bool {
	_, ok := a.Tags[tag]
	return ok
}

// Sorted returns tags in stable order for display and logging
func (a AccessComponent) Sorted() []string {
	out := make([]string, 0, len(a.Tags))
	for t := range a.Tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
