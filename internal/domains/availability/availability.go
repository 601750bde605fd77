// Package availability decides whether a room is free for a requested interval.
package availability

//go:generate go run go.uber.org/mock/mockgen -source=./availability.go -destination=./mocks/availability_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/repository"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	argRequestedStart = "requested_start"
	argRequestedEnd   = "requested_end"
	argExcludingID    = "excluding_id"
)

type Checker interface {
	IsAvailable(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time, excludingBookingID string) (bool, error)
}

type checkerImpl struct {
	repo repository.Booking
	otel otel.Otel
}

func New(repo repository.Booking, otel otel.Otel) Checker {
	return &checkerImpl{
		repo: repo,
		otel: otel,
	}
}

// IsAvailable runs inside tx so the answer holds for the rest of the transaction
// once the caller has locked the room or booking row.
func (c *checkerImpl) IsAvailable(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time, excludingBookingID string) (available bool, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		"room_id":         roomID,
		"requested_start": start.Format(constant.DateFormat),
		"requested_end":   end.Format(constant.DateFormat),
	})

	count, err := c.repo.CountTx(ctx, tx, OverlapFilter(roomID, start, end, excludingBookingID))
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to count overlapping bookings")

		return false, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count == 0, nil
}

// OverlapFilter matches active bookings on roomID whose interval overlaps [start, end).
func OverlapFilter(roomID string, start, end time.Time, excludingBookingID string) gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorIn, Value: model.ActiveStatuses, Table: model.TableName},
			gDto.Filter{
				ArgName: argRequestedEnd, Field: model.FieldStartTime, Operator: gDto.FilterOperatorLess,
				Value: end, Table: model.TableName,
			},
			gDto.Filter{
				ArgName: argRequestedStart, Field: model.FieldEndTime, Operator: gDto.FilterOperatorGreater,
				Value: start, Table: model.TableName,
			},
		},
	}

	if excludingBookingID != "" {
		group.And(gDto.Filter{
			ArgName: argExcludingID, Field: model.FieldID, Operator: gDto.FilterOperatorNotEq,
			Value: excludingBookingID, Table: model.TableName,
		})
	}

	return group
}
