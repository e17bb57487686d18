package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"tripbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(
		models.AgentConfig{Name: "selector"},
		models.AgentConfig{Name: "formatter"},
		0, // no janitor in tests; eviction is exercised directly
	)
}

func TestGetOrCreate_IdempotentPerID(t *testing.T) {
	st := newTestStore()
	defer st.Close()

	a := st.GetOrCreate("alice")
	b := st.GetOrCreate("alice")
	require.Same(t, a, b)
	assert.Equal(t, "alice", a.UserID)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "selector", a.Selector.Name)
	assert.Equal(t, "formatter", a.Formatter.Name)

	// Mutations through one reference are visible through the other.
	a.Lock()
	a.AppendTurn(models.SpeakerUser, "hello")
	a.Unlock()

	b.Lock()
	turns := b.Turns()
	b.Unlock()
	require.Len(t, turns, 1)
	assert.Equal(t, models.SpeakerUser, turns[0].Speaker)
}

func TestAppendTurn_PreservesOrder(t *testing.T) {
	st := newTestStore()
	defer st.Close()

	s := st.GetOrCreate("alice")
	s.Lock()
	s.AppendTurn(models.SpeakerUser, "first")
	s.AppendTurn(models.SpeakerAssistant, "second")
	s.AppendTurn(models.SpeakerUser, "third")
	turns := s.Turns()
	s.Unlock()

	require.Len(t, turns, 3)
	assert.Equal(t, "first", turns[0].Text)
	assert.Equal(t, "second", turns[1].Text)
	assert.Equal(t, "third", turns[2].Text)
}

func TestConcurrentSameUser_NoCorruption(t *testing.T) {
	st := newTestStore()
	defer st.Close()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			s := st.GetOrCreate("alice")
			s.Lock()
			defer s.Unlock()
			// A turn and its reply must land adjacently.
			s.AppendTurn(models.SpeakerUser, fmt.Sprintf("msg-%d", i))
			s.AppendTurn(models.SpeakerAssistant, fmt.Sprintf("msg-%d", i))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, st.Len(), "concurrent first turns must not double-construct")

	s := st.GetOrCreate("alice")
	s.Lock()
	turns := s.Turns()
	s.Unlock()
	require.Len(t, turns, 2*n)
	for i := 0; i < len(turns); i += 2 {
		assert.Equal(t, models.SpeakerUser, turns[i].Speaker)
		assert.Equal(t, models.SpeakerAssistant, turns[i+1].Speaker)
		assert.Equal(t, turns[i].Text, turns[i+1].Text, "pair at %d interleaved", i)
	}
}

func TestConcurrentDistinctUsers(t *testing.T) {
	st := newTestStore()
	defer st.Close()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			s := st.GetOrCreate(fmt.Sprintf("user-%d", i))
			s.Lock()
			s.AppendTurn(models.SpeakerUser, "hi")
			s.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, st.Len())
}

func TestClear(t *testing.T) {
	st := newTestStore()
	defer st.Close()

	st.GetOrCreate("alice")
	_, ok := st.Get("alice")
	require.True(t, ok)

	st.Clear("alice")
	_, ok = st.Get("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, st.Len())
}

func TestEvictIdle_DoesNotBlockOtherUsers(t *testing.T) {
	// Janitor ticks every idleTTL/2 = 25ms.
	st := NewStore(models.AgentConfig{}, models.AgentConfig{}, 50*time.Millisecond)
	defer st.Close()

	// Simulate an in-flight turn: the session lock stays held for the
	// duration of a (slow) collaborator call.
	busy := st.GetOrCreate("busy")
	busy.Lock()
	defer busy.Unlock()

	// Let several janitor ticks land while "busy" is locked.
	time.Sleep(120 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		st.GetOrCreate("other")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("GetOrCreate for a different user blocked behind the janitor")
	}

	// A session mid-turn counts as active regardless of lastActive.
	_, ok := st.Get("busy")
	assert.True(t, ok, "a locked session must not be evicted")
}

func TestEvictIdle(t *testing.T) {
	st := NewStore(models.AgentConfig{}, models.AgentConfig{}, 10*time.Minute)
	defer st.Close()

	st.GetOrCreate("stale")
	fresh := st.GetOrCreate("fresh")

	// Only "fresh" has activity within the TTL window.
	future := time.Now().Add(11 * time.Minute)
	fresh.Lock()
	fresh.AppendTurn(models.SpeakerUser, "still here")
	fresh.lastActive = future.Add(-time.Minute)
	fresh.Unlock()

	st.evictIdle(future)

	_, ok := st.Get("stale")
	assert.False(t, ok)
	_, ok = st.Get("fresh")
	assert.True(t, ok)
}
