package idx

import (
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Millisecond)
	id := New()
	require.Len(t, id.String(), 26)

	u, err := ulid.ParseStrict(id.String())
	require.NoError(t, err)
	require.False(t, ulid.Time(u.Time()).Before(before))
}

func TestMonotonicOrdering(t *testing.T) {
	prev := New()
	for range 100 {
		next := New()
		require.Less(t, prev.String(), next.String())
		prev = next
	}
}

func TestConcurrentUnique(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[ID]struct{}{}
		wg   sync.WaitGroup
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				id := New()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, seen, 400)
}
