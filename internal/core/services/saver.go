// Package services holds long-running application services that sit between
// the transactional core and the adapters.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/core/ports/repositories"
	"github.com/amrmohammed249/daftari/internal/dto"
)

const saveTimeout = 30 * time.Second

// Saver persists engine snapshots in the background. Commits arrive through
// Notify; rapid successive commits are coalesced by the debounce window, so
// a burst of postings produces one write. A failing save degrades durability
// only: it is logged and surfaced through Status, never propagated back into
// the transaction that triggered it.
type Saver struct {
	engine   *engine.Engine
	store    repositories.SnapshotStore
	key      string
	debounce time.Duration
	logger   *slog.Logger

	trigger chan struct{}
	stop    chan struct{}
	done    chan struct{}

	mu           sync.Mutex
	savedVersion int64
	lastErr      error
	lastSavedAt  time.Time
}

// NewSaver wires a saver to an engine and a store. savedVersion starts at the
// engine's current version: the state just loaded needs no immediate save.
func NewSaver(eng *engine.Engine, store repositories.SnapshotStore, key string,
	debounce time.Duration, logger *slog.Logger) *Saver {

	return &Saver{
		engine:       eng,
		store:        store,
		key:          key,
		debounce:     debounce,
		logger:       logger,
		trigger:      make(chan struct{}, 1),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
		savedVersion: eng.Version(),
	}
}

// Notify signals that a new version exists. Never blocks; the engine calls
// this under its own lock.
func (s *Saver) Notify(int64) {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Start launches the background loop.
func (s *Saver) Start() {
	go s.run()
}

// Close flushes any unsaved state and stops the loop.
func (s *Saver) Close() {
	close(s.stop)
	<-s.done
}

func (s *Saver) run() {
	defer close(s.done)

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-s.stop:
			if s.savedVersionBehind() {
				s.saveNow()
			}
			return
		case <-s.trigger:
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(s.debounce)
			armed = true
		case <-timer.C:
			armed = false
			s.saveNow()
		}
	}
}

func (s *Saver) savedVersionBehind() bool {
	s.mu.Lock()
	saved := s.savedVersion
	s.mu.Unlock()
	return saved < s.engine.Version()
}

func (s *Saver) saveNow() {
	st := s.engine.Snapshot()
	doc, err := json.Marshal(st)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err = s.store.Save(ctx, s.key, doc)
		cancel()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		s.logger.Warn("Snapshot save failed",
			slog.Int64("version", st.Version), slog.String("error", err.Error()))
		return
	}
	s.savedVersion = st.Version
	s.lastErr = nil
	s.lastSavedAt = time.Now().UTC()
	s.logger.Debug("Snapshot saved", slog.Int64("version", st.Version))
}

// Status reports the persistence health relative to the live state.
func (s *Saver) Status() dto.SaveStatusResponse {
	latest := s.engine.Version()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := dto.SaveStatusResponse{
		SavedVersion:  s.savedVersion,
		LatestVersion: latest,
	}
	if !s.lastSavedAt.IsZero() {
		t := s.lastSavedAt
		out.LastSavedAt = &t
	}
	switch {
	case s.lastErr != nil && s.savedVersion < latest:
		out.Status = "failed"
		out.LastError = s.lastErr.Error()
	case s.savedVersion < latest:
		out.Status = "pending"
	default:
		out.Status = "ok"
	}
	return out
}

// LoadState reads and decodes a stored snapshot. The second return reports
// whether one existed.
func LoadState(ctx context.Context, store repositories.SnapshotStore, key string) (*domain.State, bool, error) {
	doc, ok, err := store.Load(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	var st domain.State
	if err := json.Unmarshal(doc, &st); err != nil {
		return nil, true, fmt.Errorf("decoding snapshot %s: %w", key, err)
	}
	return &st, true, nil
}
