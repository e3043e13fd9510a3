package engine

import (
	"context"
	"log/slog"

	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

// GetSettings returns the current runtime switches.
func (e *Engine) GetSettings() domain.Settings {
	var out domain.Settings
	e.read(func(st *domain.State) {
		out = st.Settings
	})
	return out
}

// UpdateSettings toggles runtime switches. Only fields present in the
// request change.
func (e *Engine) UpdateSettings(ctx context.Context, actor domain.Actor, req dto.UpdateSettingsRequest) (domain.Settings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var out domain.Settings
	err := e.mutate(func(st *domain.State) error {
		if req.AllowNegativeStock != nil {
			st.Settings.AllowNegativeStock = *req.AllowNegativeStock
		}
		out = st.Settings
		return nil
	})
	if err != nil {
		return domain.Settings{}, err
	}

	e.recordAudit(actor, "settings.update", "updated settings, allowNegativeStock=%t", out.AllowNegativeStock)
	logger.Info("Settings updated", slog.Bool("allow_negative_stock", out.AllowNegativeStock))
	return out, nil
}

// AuditLog returns the most recent audit entries, newest first. limit <= 0
// returns everything.
func (e *Engine) AuditLog(limit int) []domain.AuditEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.auditLog)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.AuditEntry, 0, n)
	for i := len(e.auditLog) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, e.auditLog[i])
	}
	return out
}

// Notifications returns the most recent notifications, newest first.
// limit <= 0 returns everything.
func (e *Engine) Notifications(limit int) []domain.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.notifications)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Notification, 0, n)
	for i := len(e.notifications) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, e.notifications[i])
	}
	return out
}
