package files

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// KeyMaker synthesizes unique upload keys of the form
// "{epochMillis}-{originalName}". Every upload path (gateway multipart
// upload and presigned upload) must share one KeyMaker per process so
// that both write into the same namespace under the same uniqueness rule.
//
// The embedded timestamp is forced to be non-decreasing across calls even
// if the wall clock steps backwards. Two same-named uploads within one
// millisecond can still collide; enabling the random suffix closes that
// window.
type KeyMaker struct {
	mu           sync.Mutex
	last         int64
	randomSuffix bool

	// now is swappable for tests.
	now func() time.Time
}

// NewKeyMaker returns a KeyMaker. With randomSuffix set, a short random
// fragment is inserted between the timestamp and the name.
func NewKeyMaker(randomSuffix bool) *KeyMaker {
	return &KeyMaker{
		randomSuffix: randomSuffix,
		now:          time.Now,
	}
}

// Synthesize returns a new key for the given original file name.
func (m *KeyMaker) Synthesize(name string) string {
	m.mu.Lock()
	ts := m.now().UnixMilli()
	if ts < m.last {
		ts = m.last
	}
	m.last = ts
	m.mu.Unlock()

	if m.randomSuffix {
		return fmt.Sprintf("%d-%s-%s", ts, uuid.NewString()[:8], name)
	}
	return fmt.Sprintf("%d-%s", ts, name)
}
