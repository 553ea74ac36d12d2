package journal

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
)

func TestServiceIdleWithoutConfig(t *testing.T) {
	svc := NewService()
	require.NoError(t, svc.Init())
	require.NoError(t, svc.Start())
	assert.Nil(t, svc.Journal())

	published := 0
	svc.Contribute(func(any) { published++ })
	assert.Zero(t, published)
	assert.NoError(t, svc.Stop())
}

func TestServicePublishesRecorder(t *testing.T) {
	cfg := &Config{Driver: "sqlite", DSN: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())}
	svc := NewService()
	require.NoError(t, svc.Init(cfg, zerolog.Nop(), "unrelated"))
	require.NoError(t, svc.Start())
	t.Cleanup(func() { svc.Stop() })
	require.NotNil(t, svc.Journal())

	var res *engine.JournalResource
	svc.Contribute(func(r any) {
		res, _ = r.(*engine.JournalResource)
	})
	require.NotNil(t, res)

	require.NoError(t, res.Recorder.RecordVehicleEvent(3, "EventVehicleHorn", core.Entity(9), core.Entity(2), ""))
	entries, err := svc.Journal().ForVehicle(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(2), entries[0].Driver)
	assert.Equal(t, int64(3), entries[0].Frame)

	require.NoError(t, svc.Stop())
	assert.Nil(t, svc.Journal())
	assert.NoError(t, svc.Stop(), "stop is idempotent")
}

func TestServiceStartFailure(t *testing.T) {
	svc := NewService()
	require.NoError(t, svc.Init(&Config{Driver: "oracle", DSN: "x"}))
	assert.Error(t, svc.Start())
}
