package model

import (
	"database/sql"
	"roombook/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "time_extensions"
	EntityName = "extension"

	FieldID              = "id"
	FieldBookingID       = "booking_id"
	FieldDurationMinutes = "duration_minutes"
	FieldAdditionalCost  = "additional_cost"
	FieldAddedAt         = "added_at"
)

// Extension is an append-only ledger entry. Rows are never updated except
// for BookingID, which is nulled when the booking is deleted.
type Extension struct {
	ID              string          `db:"id"`
	BookingID       sql.NullString  `db:"booking_id"`
	DurationMinutes int             `db:"duration_minutes"`
	AdditionalCost  decimal.Decimal `db:"additional_cost"`
	AddedAt         time.Time       `db:"added_at"`
	model.Metadata
}

// TotalMinutes sums the minutes granted by extensions.
func TotalMinutes(extensions []Extension) int {
	total := 0
	for _, ext := range extensions {
		total += ext.DurationMinutes
	}

	return total
}
