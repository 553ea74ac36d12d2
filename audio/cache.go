package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-garage/core"
)

// soundCache stores pre-rendered unity-gain buffers per sound
type soundCache struct {
	mu     sync.RWMutex
	format beep.Format
	store  map[core.SoundID]*beep.Buffer
}

func newSoundCache(rate beep.SampleRate) *soundCache {
	return &soundCache{
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		store:  make(map[core.SoundID]*beep.Buffer),
	}
}

// get returns the cached buffer or renders on demand
// Returns nil for sounds missing from the library
func (c *soundCache) get(id core.SoundID) *beep.Buffer {
	c.mu.RLock()
	if buf, ok := c.store[id]; ok {
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	gen, ok := library[id]
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if buf, ok := c.store[id]; ok {
		return buf
	}

	buf := beep.NewBuffer(c.format)
	buf.Append(gen(c.format.SampleRate))
	c.store[id] = buf
	return buf
}

// preload renders every library sound
func (c *soundCache) preload() {
	for id := range library {
		c.get(id)
	}
}
