package manifest

import (
	"fmt"

	"github.com/lixenwraith/vi-garage/audio"
	"github.com/lixenwraith/vi-garage/journal"
	"github.com/lixenwraith/vi-garage/registry"
	"github.com/lixenwraith/vi-garage/service"
)

// RegisterServices registers all service factories
func RegisterServices() {
	registry.RegisterService("audio", func() any {
		return audio.NewService()
	})

	registry.RegisterService("journal", func() any {
		return journal.NewService()
	})
}

// ActiveServices returns the ordered list of services to instantiate
func ActiveServices() []string {
	return []string{
		"audio",
		"journal",
	}
}

// NewHub builds a hub holding every active service
func NewHub() (*service.Hub, error) {
	RegisterServices()

	hub := service.NewHub()
	for _, name := range ActiveServices() {
		factory, ok := registry.GetService(name)
		if !ok {
			return nil, fmt.Errorf("service %q not registered", name)
		}
		svc, ok := factory().(service.Service)
		if !ok {
			return nil, fmt.Errorf("service %q does not implement Service", name)
		}
		if err := hub.Register(svc); err != nil {
			return nil, err
		}
	}
	return hub, nil
}
