package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry is the central counter facade
// Systems cache pointers during construction; handlers write directly to atomics
type Registry struct {
	Bools *MetricMap[atomic.Bool]
	Ints  *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools: NewMetricMap[atomic.Bool](),
		Ints:  NewMetricMap[atomic.Int64](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count()
}

// Snapshot renders all metrics as "key=value" pairs in key order
// Used by the sandbox status line and debug logs
func (r *Registry) Snapshot() string {
	var b strings.Builder
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", key, ptr.Load())
	})
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%t", key, ptr.Load())
	})
	return b.String()
}
