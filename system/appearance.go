package system

import (
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/parameter"
)

// AppearanceSystem stores visual key/value state read by the renderer
type AppearanceSystem struct {
	engine.SystemBase
}

// NewAppearanceSystem creates the appearance system
func NewAppearanceSystem(world *engine.World) *AppearanceSystem {
	s := &AppearanceSystem{SystemBase: engine.NewSystemBase(world, "appearance")}
	s.Init()
	return s
}

func (s *AppearanceSystem) Init() {}

func (s *AppearanceSystem) Name() string {
	return "appearance"
}

func (s *AppearanceSystem) Priority() int {
	return parameter.PriorityAppearance
}

func (s *AppearanceSystem) Update() {}

// SetData writes key on e, creating the component on first use
func (s *AppearanceSystem) SetData(e core.Entity, key string, value any) {
	if !s.World.Exists(e) {
		return
	}
	app, _ := s.Component.Appearance.GetComponent(e)
	if app.Data == nil {
		app.Data = make(map[string]any)
	}
	app.Data[key] = value
	s.Component.Appearance.SetComponent(e, app)
}

// GetData reads key from e
func (s *AppearanceSystem) GetData(e core.Entity, key string) (any, bool) {
	app, ok := s.Component.Appearance.GetComponent(e)
	if !ok {
		return nil, false
	}
	v, ok := app.Data[key]
	return v, ok
}

// Bool reads a boolean key, false when unset
func (s *AppearanceSystem) Bool(e core.Entity, key string) bool {
	v, _ := s.GetData(e, key)
	b, _ := v.(bool)
	return b
}

