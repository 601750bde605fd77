package dto_test

import (
	"net/http/httptest"
	"roombook/shared/constant"
	"roombook/shared/dto"
	"roombook/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "admin-1",
		ModifiedBy: "admin-2",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "admin-1", metadata.CreatedBy)
	assert.Equal(t, "admin-2", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		expected     dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=start_time&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_time", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults when empty",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults when disabled",
			expected: dto.QueryParams{},
		},
		{
			name:         "malformed numbers fall back",
			query:        "page=abc&limit=-10",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:         "zero page falls back",
			query:        "page=0",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown sort direction is ignored",
			query:    "sort_by=code&sort_dir=sideways",
			expected: dto.QueryParams{SortBy: "code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/rooms?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 3}.Offset())
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "empty listing", total: 0, limit: 10, expected: 1},
		{name: "no limit", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "remainder", total: 101, limit: 10, expected: 11},
		{name: "limit above total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := dto.Pagination{}
			page.FromCount(tt.total, tt.limit)

			assert.Equal(t, tt.expected, page.TotalPage)
			assert.Equal(t, tt.total, page.TotalData)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name          string
		filter        dto.Filter
		expectedWhere string
		expectedArgs  map[string]any
	}{
		{
			name:          "eq with table",
			filter:        dto.Filter{Field: "code", Value: "R101", Operator: dto.FilterOperatorEq, Table: "rooms"},
			expectedWhere: "rooms.code = :code",
			expectedArgs:  map[string]any{"code": "R101"},
		},
		{
			name:          "like",
			filter:        dto.Filter{Field: "name", Value: "ali", Operator: dto.FilterOperatorLike},
			expectedWhere: "LOWER(name) LIKE LOWER(:name) ",
			expectedArgs:  map[string]any{"name": "%ali%"},
		},
		{
			name:          "in expands slices",
			filter:        dto.Filter{Field: "status", ArgName: "statuses", Value: []string{"booked", "checked_in"}, Operator: dto.FilterOperatorIn},
			expectedWhere: "status IN (:statuses_0, :statuses_1) ",
			expectedArgs:  map[string]any{"statuses_0": "booked", "statuses_1": "checked_in"},
		},
		{
			name:          "in with a scalar is bound",
			filter:        dto.Filter{Field: "status", Value: "booked", Operator: dto.FilterOperatorIn},
			expectedWhere: "status IN (:status) ",
			expectedArgs:  map[string]any{"status": "booked"},
		},
		{
			name:          "in with an empty slice matches nothing",
			filter:        dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			expectedWhere: "FALSE",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "less eq",
			filter:        dto.Filter{Field: "price_per_hour", ArgName: "max_price", Value: "20.00", Operator: dto.FilterOperatorLessEq, Table: "rooms"},
			expectedWhere: "rooms.price_per_hour <= :max_price",
			expectedArgs:  map[string]any{"max_price": "20.00"},
		},
		{
			name:          "plain query keeps args",
			filter:        dto.Filter{Value: "start_time < :end", Operator: dto.FilterPlainQuery, Args: map[string]any{"end": 1}},
			expectedWhere: "(start_time < :end)",
			expectedArgs:  map[string]any{"end": 1},
		},
		{
			name:          "is null",
			filter:        dto.Filter{Field: "room_id", Operator: dto.FilterIsNull, Table: "room_bookings"},
			expectedWhere: "room_bookings.room_id IS NULL",
			expectedArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expectedWhere, where)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorOr}
	group.And(dto.Filter{Field: "status", Value: "open", Operator: dto.FilterOperatorEq})
	group.Filters = append(group.Filters, dto.FilterGroup{})
	group.And(dto.Filter{Field: "ignored", Value: 1, Operator: "between"})
	group.And(dto.Filter{Field: "capacity", Value: 2, Operator: dto.FilterOperatorGreaterEq})

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status OR capacity >= :capacity)", where)
	assert.Equal(t, map[string]any{"status": "open", "capacity": 2}, args)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}
