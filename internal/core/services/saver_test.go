package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
)

// stubStore records saves in memory and can be told to fail.
type stubStore struct {
	mu    sync.Mutex
	docs  map[string][]byte
	saves int
	fail  error
}

func newStubStore() *stubStore {
	return &stubStore{docs: make(map[string][]byte)}
}

func (s *stubStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key]
	return doc, ok, nil
}

func (s *stubStore) Save(_ context.Context, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.docs[key] = append([]byte(nil), doc...)
	s.saves++
	return nil
}

func (s *stubStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *stubStore) setFail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

var testActor = domain.Actor{ID: "user-1", Name: "Tester"}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func commit(t *testing.T, eng *engine.Engine, name string) {
	t.Helper()
	_, err := eng.CreateCustomer(context.Background(), testActor, dto.CreatePartyRequest{Name: name})
	require.NoError(t, err)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestSaverCoalescesBurstIntoOneSave(t *testing.T) {
	eng := engine.New(engine.NewDefaultState())
	store := newStubStore()
	saver := NewSaver(eng, store, "test", 50*time.Millisecond, quietLogger())
	eng.SetCommitHook(saver.Notify)
	saver.Start()

	commit(t, eng, "Alice")
	commit(t, eng, "Bob")
	commit(t, eng, "Carol")

	waitFor(t, func() bool { return store.saveCount() >= 1 })
	// give a second debounce window to prove no extra saves arrive
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 1, store.saveCount())

	saver.Close()

	st, found, err := LoadState(context.Background(), store, "test")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, eng.Version(), st.Version)
	assert.Len(t, st.Customers, 3)
}

func TestSaverStatusTransitions(t *testing.T) {
	eng := engine.New(engine.NewDefaultState())
	store := newStubStore()
	saver := NewSaver(eng, store, "test", 20*time.Millisecond, quietLogger())
	eng.SetCommitHook(saver.Notify)

	// nothing committed yet
	assert.Equal(t, "ok", saver.Status().Status)

	saver.Start()
	commit(t, eng, "Alice")
	waitFor(t, func() bool { return saver.Status().Status == "ok" })

	st := saver.Status()
	assert.Equal(t, eng.Version(), st.SavedVersion)
	require.NotNil(t, st.LastSavedAt)

	saver.Close()
}

func TestSaverFailureIsSurfacedNotFatal(t *testing.T) {
	eng := engine.New(engine.NewDefaultState())
	store := newStubStore()
	store.setFail(errors.New("disk full"))
	saver := NewSaver(eng, store, "test", 20*time.Millisecond, quietLogger())
	eng.SetCommitHook(saver.Notify)
	saver.Start()

	commit(t, eng, "Alice")
	waitFor(t, func() bool { return saver.Status().Status == "failed" })

	st := saver.Status()
	assert.Contains(t, st.LastError, "disk full")
	assert.Less(t, st.SavedVersion, st.LatestVersion)

	// the engine keeps committing regardless
	commit(t, eng, "Bob")

	// recovery: the close flush writes the pending state
	store.setFail(nil)
	saver.Close()
	assert.Equal(t, "ok", saver.Status().Status)
}

func TestSaverCloseFlushesPendingState(t *testing.T) {
	eng := engine.New(engine.NewDefaultState())
	store := newStubStore()
	// long debounce so the timer never fires on its own
	saver := NewSaver(eng, store, "test", time.Hour, quietLogger())
	eng.SetCommitHook(saver.Notify)
	saver.Start()

	commit(t, eng, "Alice")
	saver.Close()

	assert.Equal(t, 1, store.saveCount())
	_, found, err := LoadState(context.Background(), store, "test")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestLoadStateMissingSnapshot(t *testing.T) {
	store := newStubStore()
	st, found, err := LoadState(context.Background(), store, "nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, st)
}

func TestLoadStateCorruptSnapshot(t *testing.T) {
	store := newStubStore()
	store.docs["bad"] = []byte("{not json")
	_, found, err := LoadState(context.Background(), store, "bad")
	require.Error(t, err)
	assert.True(t, found)
}
