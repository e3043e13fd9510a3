package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amrmohammed249/daftari/internal/core/domain"
)

// LineItemRequest is one document line as submitted by the caller. UnitID is
// empty for the base unit; Discount is an absolute amount.
type LineItemRequest struct {
	ItemID    string          `json:"itemID" binding:"required"`
	UnitID    string          `json:"unitID"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
}

// ToLineItems converts request lines to bare domain lines; the engine
// resolves names, factors and base quantities during validation.
func ToLineItems(lines []LineItemRequest) []domain.LineItem {
	out := make([]domain.LineItem, len(lines))
	for i, l := range lines {
		out[i] = domain.LineItem{
			ItemID:    l.ItemID,
			UnitID:    l.UnitID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
		}
	}
	return out
}

// AuditEntryResponse is one audit-log row.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actorID"`
	ActorName string    `json:"actorName"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// ToAuditEntryResponses maps the audit log.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryResponse(e)
	}
	return out
}

// SettingsResponse mirrors the engine settings.
type SettingsResponse struct {
	AllowNegativeStock bool `json:"allowNegativeStock"`
}

// UpdateSettingsRequest toggles runtime switches.
type UpdateSettingsRequest struct {
	AllowNegativeStock *bool `json:"allowNegativeStock"`
}

// SaveStatusResponse reports the persistence side effect's health. A failed
// save is a warning; in-memory state stays the source of truth.
type SaveStatusResponse struct {
	Status        string     `json:"status"` // ok | pending | failed
	SavedVersion  int64      `json:"savedVersion"`
	LatestVersion int64      `json:"latestVersion"`
	LastError     string     `json:"lastError,omitempty"`
	LastSavedAt   *time.Time `json:"lastSavedAt,omitempty"`
}
