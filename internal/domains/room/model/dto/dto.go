package dto

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"roombook/internal/domains/room/model"
	"roombook/shared"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	Code             string           `json:"code"               validate:"required,max=20"`
	Capacity         int              `json:"capacity"           validate:"required,gt=0"`
	IsAirConditioned bool             `json:"is_air_conditioned"`
	Status           string           `json:"status"             validate:"omitempty,oneof=open closed maintenance"`
	PricePerHour     *decimal.Decimal `json:"price_per_hour"     validate:"required"`
	BedConfig        model.BedConfig  `json:"bed_config"         validate:"omitempty,valid"`
}

// Check covers the rules struct tags cannot express.
func (c *CreateRoomRequest) Check() error {
	if c.PricePerHour != nil && c.PricePerHour.IsNegative() {
		return fmt.Errorf("price_per_hour must be greater than or equal to 0")
	}

	return nil
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := model.StatusOpen
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	bedConfig := model.NewBedConfig()
	for bedType, count := range c.BedConfig {
		bedConfig[bedType] = count
	}

	now := timezone.Now()

	return model.Room{
		ID:               uuid.NewString(),
		Code:             c.Code,
		Capacity:         c.Capacity,
		IsAirConditioned: c.IsAirConditioned,
		Status:           status,
		PricePerHour:     c.PricePerHour.Round(constant.MoneyScale),
		BedConfig:        bedConfig,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Capacity         *int             `db:"capacity"           json:"capacity"           validate:"omitempty,gt=0"`
	IsAirConditioned *bool            `db:"is_air_conditioned" json:"is_air_conditioned"`
	Status           *string          `db:"status"             json:"status"             validate:"omitempty,oneof=open closed maintenance"`
	PricePerHour     *decimal.Decimal `db:"price_per_hour"     json:"price_per_hour"`
	BedConfig        model.BedConfig  `db:"bed_config"         json:"bed_config"         validate:"omitempty,valid"`
}

func (u *UpdateRoomRequest) Check() error {
	if u.PricePerHour != nil {
		if u.PricePerHour.IsNegative() {
			return fmt.Errorf("price_per_hour must be greater than or equal to 0")
		}

		rounded := u.PricePerHour.Round(constant.MoneyScale)
		u.PricePerHour = &rounded
	}

	return nil
}

// IsEmpty reports whether the request carries no field to update.
func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.Capacity == nil && u.IsAirConditioned == nil && u.Status == nil && u.PricePerHour == nil && u.BedConfig == nil
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

// ObjectName returns a unique object name that keeps the uploaded extension.
func (u *UploadImageRequest) ObjectName(code string) string {
	return fmt.Sprintf("%s-%s%s", code, uuid.NewString(), filepath.Ext(u.Image.Filename))
}

func (u *UploadImageRequest) ContentType() string {
	return u.Image.Header.Get(constant.RequestHeaderContentType)
}

type RoomResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Capacity         int             `json:"capacity"`
	IsAirConditioned bool            `json:"is_air_conditioned"`
	Status           string          `json:"status"`
	PricePerHour     string          `json:"price_per_hour"`
	BedConfig        model.BedConfig `json:"bed_config"`
	Image            string          `json:"image,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.ID = room.ID
	r.Code = room.Code
	r.Capacity = room.Capacity
	r.IsAirConditioned = room.IsAirConditioned
	r.Status = string(room.Status)
	r.PricePerHour = room.PricePerHour.StringFixed(constant.MoneyScale)
	r.BedConfig = room.BedConfig

	if r.BedConfig == nil {
		r.BedConfig = model.NewBedConfig()
	}

	r.Image = room.Image
	r.Metadata.FromModel(room.Metadata)
}

type GetRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	gDto.Pagination
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.Pagination.FromCount(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

const (
	QueryStatus           = "status"
	QueryCode             = "code"
	QueryMinPrice         = "min_price"
	QueryMaxPrice         = "max_price"
	QueryIsAirConditioned = "is_air_conditioned"
	QueryMinCapacity      = "min_capacity"
	QueryAvailableFrom    = "available_from"
	QueryAvailableTo      = "available_to"
)

// availabilityQuery keeps rooms with no active booking overlapping the requested window.
const availabilityQuery = `NOT EXISTS (
	SELECT 1 FROM room_bookings b
	WHERE b.room_id = rooms.id
	AND b.status IN ('booked', 'checked_in')
	AND b.start_time < :available_to
	AND b.end_time > :available_from)`

// RoomFilter is the parsed set of list filters.
type RoomFilter struct {
	Status           string
	Code             string
	MinPrice         *decimal.Decimal
	MaxPrice         *decimal.Decimal
	IsAirConditioned *bool
	MinCapacity      *int
	AvailableFrom    *time.Time
	AvailableTo      *time.Time
}

func (f *RoomFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.Status = query.Get(QueryStatus)
	if f.Status != "" && !model.Status(f.Status).IsValid() {
		return fmt.Errorf("status must be one of open closed maintenance")
	}

	f.Code = query.Get(QueryCode)
	f.IsAirConditioned = shared.ConvertStringToBool(query.Get(QueryIsAirConditioned))

	var err error

	if f.MinPrice, err = parseDecimal(query.Get(QueryMinPrice), QueryMinPrice); err != nil {
		return err
	}

	if f.MaxPrice, err = parseDecimal(query.Get(QueryMaxPrice), QueryMaxPrice); err != nil {
		return err
	}

	if raw := query.Get(QueryMinCapacity); raw != "" {
		capacity, err := shared.ConvertStringToInt(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer", QueryMinCapacity)
		}

		f.MinCapacity = &capacity
	}

	from, to := query.Get(QueryAvailableFrom), query.Get(QueryAvailableTo)
	if (from == "") != (to == "") {
		return fmt.Errorf("%s and %s must be provided together", QueryAvailableFrom, QueryAvailableTo)
	}

	if from != "" {
		start, err := timezone.ParseTimestamp(from)
		if err != nil {
			return fmt.Errorf("%s must be an RFC 3339 timestamp", QueryAvailableFrom)
		}

		end, err := timezone.ParseTimestamp(to)
		if err != nil {
			return fmt.Errorf("%s must be an RFC 3339 timestamp", QueryAvailableTo)
		}

		if !end.After(start) {
			return fmt.Errorf("%s must be after %s", QueryAvailableTo, QueryAvailableFrom)
		}

		f.AvailableFrom, f.AvailableTo = &start, &end
	}

	return nil
}

func parseDecimal(raw, key string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a decimal number", key)
	}

	return &value, nil
}

func (f *RoomFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Status != "" {
		group.And(gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: f.Status, Table: model.TableName})
	}

	if f.Code != "" {
		group.And(gDto.Filter{Field: model.FieldCode, Operator: gDto.FilterOperatorLike, Value: f.Code, Table: model.TableName})
	}

	if f.MinPrice != nil {
		group.And(gDto.Filter{
			ArgName: QueryMinPrice, Field: model.FieldPricePerHour, Operator: gDto.FilterOperatorGreaterEq,
			Value: *f.MinPrice, Table: model.TableName,
		})
	}

	if f.MaxPrice != nil {
		group.And(gDto.Filter{
			ArgName: QueryMaxPrice, Field: model.FieldPricePerHour, Operator: gDto.FilterOperatorLessEq,
			Value: *f.MaxPrice, Table: model.TableName,
		})
	}

	if f.IsAirConditioned != nil {
		group.And(gDto.Filter{Field: model.FieldIsAirConditioned, Operator: gDto.FilterOperatorEq, Value: *f.IsAirConditioned, Table: model.TableName})
	}

	if f.MinCapacity != nil {
		group.And(gDto.Filter{Field: model.FieldCapacity, Operator: gDto.FilterOperatorGreaterEq, Value: *f.MinCapacity, Table: model.TableName})
	}

	if f.AvailableFrom != nil && f.AvailableTo != nil {
		group.And(gDto.Filter{
			Operator: gDto.FilterPlainQuery,
			Value:    availabilityQuery,
			Args: map[string]any{
				QueryAvailableFrom: *f.AvailableFrom,
				QueryAvailableTo:   *f.AvailableTo,
			},
		})
	}

	return group
}
