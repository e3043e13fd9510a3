// Package engine is the transactional core: a document engine over one
// versioned in-memory State. Every operation clones the current state,
// applies the full transition to the clone, and swaps it in only on success,
// so a failed precondition can never leave partial stock, balance or ledger
// mutations behind.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// CommitHook is invoked after every successful transition with the new state
// version. It must not block; the saver coalesces rapid successive commits.
type CommitHook func(version int64)

// Engine owns the single current state value. It is single-writer by
// construction: the mutex serializes transitions, and readers only ever see
// fully committed states.
type Engine struct {
	mu            sync.Mutex
	state         *domain.State
	commitHook    CommitHook
	auditLog      []domain.AuditEntry
	notifications []domain.Notification

	now func() time.Time
}

// New wraps an existing (loaded or freshly bootstrapped) state.
func New(state *domain.State) *Engine {
	return &Engine{
		state: state,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetCommitHook registers the persistence observer. Wire this before serving
// traffic.
func (e *Engine) SetCommitHook(hook CommitHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commitHook = hook
}

// mutate runs fn against a clone of the current state and commits the clone
// when fn returns nil. On error the live state is untouched.
func (e *Engine) mutate(fn func(st *domain.State) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.Version++
	e.state = next
	if e.commitHook != nil {
		e.commitHook(next.Version)
	}
	return nil
}

// read runs fn against the current state under the lock. fn must not mutate
// and must copy anything it hands out.
func (e *Engine) read(fn func(st *domain.State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.state)
}

// Snapshot returns a deep copy of the current state, safe to serialize
// concurrently with further transitions.
func (e *Engine) Snapshot() *domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Version returns the current state version.
func (e *Engine) Version() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Version
}

// recordAudit appends an audit-log entry. Call only after a successful
// transition (the audit log is derived, never authoritative).
func (e *Engine) recordAudit(actor domain.Actor, action, format string, args ...interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.auditLog = append(e.auditLog, domain.AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: e.now(),
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    action,
		Details:   fmt.Sprintf(format, args...),
	})
}

// notify appends display-layer notifications.
func (e *Engine) notify(notes []domain.Notification) {
	if len(notes) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifications = append(e.notifications, notes...)
}

// lowStockNotes builds warnings for items whose stock crossed below the
// threshold during an operation. before holds the pre-operation stock per
// touched item id.
func (e *Engine) lowStockNotes(st *domain.State, before map[string]decimal.Decimal) []domain.Notification {
	var notes []domain.Notification
	for itemID, prior := range before {
		item := st.ItemByID(itemID)
		if item == nil {
			continue
		}
		if prior.GreaterThanOrEqual(domain.LowStockThreshold) &&
			item.Stock.LessThan(domain.LowStockThreshold) {
			notes = append(notes, domain.Notification{
				ID:        uuid.NewString(),
				Timestamp: e.now(),
				Message:   fmt.Sprintf("Stock for %s is low: %s %s remaining", item.Name, item.Stock.String(), item.BaseUnit),
				Severity:  domain.SeverityWarning,
				Link:      "/items/" + item.ID,
			})
		}
	}
	return notes
}
