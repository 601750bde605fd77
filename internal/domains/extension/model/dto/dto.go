package dto

import (
	"database/sql"
	"errors"
	"roombook/internal/domains/extension/model"
	"roombook/internal/domains/pricing"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errDuration = errors.New("duration must be a positive number of hours, at most 8784, that converts to whole minutes")

type CreateExtensionRequest struct {
	// Duration is expressed in hours, e.g. 0.5 for thirty minutes.
	Duration *decimal.Decimal `json:"duration" swaggertype:"number" validate:"required"`
}

// Minutes converts Duration to whole minutes.
func (c *CreateExtensionRequest) Minutes() (int, error) {
	minutes, ok := pricing.HoursToMinutes(*c.Duration)
	if !ok {
		return 0, errDuration
	}

	return minutes, nil
}

func NewExtension(bookingID string, minutes int, cost decimal.Decimal, user string) model.Extension {
	now := timezone.Now()

	return model.Extension{
		ID:              uuid.NewString(),
		BookingID:       sql.NullString{String: bookingID, Valid: true},
		DurationMinutes: minutes,
		AdditionalCost:  cost,
		AddedAt:         now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateExtensionRequest is accepted only to be refused: the ledger is append-only.
type UpdateExtensionRequest struct {
	Duration *decimal.Decimal `json:"duration" swaggertype:"number"`
}

type ExtensionResponse struct {
	ID              string  `json:"id"`
	BookingID       *string `json:"booking_id"`
	DurationMinutes int     `json:"duration_minutes"`
	AdditionalCost  string  `json:"additional_cost"`
	AddedAt         string  `json:"added_at"`
	gDto.Metadata
}

func (r *ExtensionResponse) FromModel(ext model.Extension) {
	r.ID = ext.ID

	if ext.BookingID.Valid {
		bookingID := ext.BookingID.String
		r.BookingID = &bookingID
	}

	r.DurationMinutes = ext.DurationMinutes
	r.AdditionalCost = ext.AdditionalCost.StringFixed(constant.MoneyScale)
	r.AddedAt = timezone.Format(ext.AddedAt, constant.DateFormat)
	r.Metadata.FromModel(ext.Metadata)
}

func FromModels(extensions []model.Extension) []ExtensionResponse {
	res := make([]ExtensionResponse, len(extensions))
	for i, ext := range extensions {
		res[i].FromModel(ext)
	}

	return res
}

type GetExtensionsResponse struct {
	Extensions []ExtensionResponse `json:"extensions"`
	gDto.Pagination
}

func (r *GetExtensionsResponse) FromModels(models []model.Extension, totalData, limit int) {
	r.Pagination.FromCount(totalData, limit)
	r.Extensions = FromModels(models)
}
