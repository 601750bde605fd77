package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"roombook/shared/model"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID               = "id"
	FieldCode             = "code"
	FieldCapacity         = "capacity"
	FieldIsAirConditioned = "is_air_conditioned"
	FieldStatus           = "status"
	FieldPricePerHour     = "price_per_hour"
	FieldBedConfig        = "bed_config"
	FieldImage            = "image"
)

// Cache key prefixes for the room catalog. Room lists depend on bookings
// through the availability filter, so booking writes clear the list prefixes too.
const (
	CacheGet    = "room:get"
	CacheGetAll = "room:get_all"
	CacheCount  = "room:count"
)

type Status string

const (
	StatusOpen        Status = "open"
	StatusClosed      Status = "closed"
	StatusMaintenance Status = "maintenance"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusMaintenance:
		return true
	default:
		return false
	}
}

var AllowedBedTypes = []string{"single", "double", "queen", "king"}

// BedConfig maps a bed type to the number of such beds in the room.
type BedConfig map[string]int

// NewBedConfig returns an empty configuration owned by the caller.
func NewBedConfig() BedConfig {
	return BedConfig{}
}

// Validate reports the first bed type outside AllowedBedTypes, in key order.
func (b BedConfig) Validate() error {
	keys := make([]string, 0, len(b))
	for key := range b {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		if !slices.Contains(AllowedBedTypes, key) {
			return fmt.Errorf("bed_config: %q is not an allowed bed type (allowed: single, double, queen, king)", key)
		}

		if b[key] < 1 {
			return fmt.Errorf("bed_config: count for %q must be at least 1", key)
		}
	}

	return nil
}

func (b BedConfig) Value() (driver.Value, error) {
	if b == nil {
		return []byte("{}"), nil
	}

	raw, err := json.Marshal(map[string]int(b))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bed config: %w", err)
	}

	return raw, nil
}

func (b *BedConfig) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*b = NewBedConfig()

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("bed config: unsupported source type")
	}

	config := NewBedConfig()
	if err := json.Unmarshal(raw, &config); err != nil {
		return fmt.Errorf("failed to unmarshal bed config: %w", err)
	}

	*b = config

	return nil
}

type Room struct {
	ID               string          `db:"id"`
	Code             string          `db:"code"`
	Capacity         int             `db:"capacity"`
	IsAirConditioned bool            `db:"is_air_conditioned"`
	Status           Status          `db:"status"`
	PricePerHour     decimal.Decimal `db:"price_per_hour"`
	BedConfig        BedConfig       `db:"bed_config"`
	Image            string          `db:"image"`
	model.Metadata
}

// IsBookable reports whether new bookings may be placed on the room.
func (r Room) IsBookable() bool {
	return r.Status == StatusOpen
}
