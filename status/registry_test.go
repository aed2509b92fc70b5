package status

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapCachesPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("field.delta_ms")
	a.Set(16.5)

	assert.Same(t, a, m.Get("field.delta_ms"))
	assert.Equal(t, 16.5, m.Get("field.delta_ms").Get())
	assert.True(t, m.Has("field.delta_ms"))
	assert.False(t, m.Has("missing"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMapConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				r.Ints.Get("field.ticks").Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), r.Ints.Get("field.ticks").Load())
	assert.Equal(t, 1, r.TotalCount())
}

func TestRegistrySummarySorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("field.ticks").Store(3)
	r.Ints.Get("field.bursts").Store(1)
	r.Floats.Get("field.delta_ms").Set(16)
	r.Strings.Get("field.state").Store("running")

	assert.Equal(t, "field.bursts=1 field.ticks=3 field.delta_ms=16.00 field.state=running", r.Summary())
	assert.Equal(t, 4, r.TotalCount())
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())

	s.Store(strings.Repeat("x", MaxStringLen+10))
	assert.Len(t, s.Load(), MaxStringLen)
}
