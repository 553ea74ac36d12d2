package system

import (
	"sort"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/parameter"
)

// AccessSystem resolves access tags from an entity and the items it holds
type AccessSystem struct {
	engine.SystemBase
}

// NewAccessSystem creates the access resolver
func NewAccessSystem(world *engine.World) *AccessSystem {
	s := &AccessSystem{SystemBase: engine.NewSystemBase(world, "access")}
	s.Init()
	return s
}

func (s *AccessSystem) Init() {}

func (s *AccessSystem) Name() string {
	return "access"
}

func (s *AccessSystem) Priority() int {
	return parameter.PriorityAccess
}

func (s *AccessSystem) Update() {}

// FindPotentialAccessItems returns the user followed by every real item in its hands
// Virtual placeholders never carry access
func (s *AccessSystem) FindPotentialAccessItems(user core.Entity) []core.Entity {
	items := []core.Entity{user}

	hands, ok := s.Component.Hands.GetComponent(user)
	if !ok {
		return items
	}
	for _, slot := range hands.Slots {
		if !slot.Held.Valid() || s.Component.VirtualItem.HasEntity(slot.Held) {
			continue
		}
		items = append(items, slot.Held)
	}
	return items
}

// FindAccessTags returns the sorted union of tags carried by items
func (s *AccessSystem) FindAccessTags(user core.Entity, items []core.Entity) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		access, ok := s.Component.Access.GetComponent(item)
		if !ok {
			continue
		}
		for tag := range access.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
