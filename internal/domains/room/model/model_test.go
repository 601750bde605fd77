package model_test

import (
	"roombook/internal/domains/room/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBedConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  model.BedConfig
		wantErr string
	}{
		{name: "empty", config: model.NewBedConfig()},
		{name: "nil", config: nil},
		{name: "allowed keys", config: model.BedConfig{"single": 2, "king": 1}},
		{
			name:    "disallowed key is named",
			config:  model.BedConfig{"double": 1, "bunk": 2},
			wantErr: `bed_config: "bunk" is not an allowed bed type (allowed: single, double, queen, king)`,
		},
		{
			name:    "zero count",
			config:  model.BedConfig{"queen": 0},
			wantErr: `bed_config: count for "queen" must be at least 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewBedConfigIsNotShared(t *testing.T) {
	first := model.NewBedConfig()
	second := model.NewBedConfig()

	first["single"] = 1

	assert.Empty(t, second)
}

func TestBedConfigScanAndValue(t *testing.T) {
	var config model.BedConfig

	assert.NoError(t, config.Scan([]byte(`{"double":1,"single":2}`)))
	assert.Equal(t, model.BedConfig{"double": 1, "single": 2}, config)

	value, err := config.Value()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"double":1,"single":2}`, string(value.([]byte)))

	assert.NoError(t, config.Scan(nil))
	assert.NotNil(t, config)
	assert.Empty(t, config)

	assert.Error(t, config.Scan(42))
}

func TestStatus(t *testing.T) {
	assert.True(t, model.StatusOpen.IsValid())
	assert.True(t, model.StatusMaintenance.IsValid())
	assert.False(t, model.Status("demolished").IsValid())

	assert.True(t, model.Room{Status: model.StatusOpen}.IsBookable())
	assert.False(t, model.Room{Status: model.StatusClosed}.IsBookable())
}
