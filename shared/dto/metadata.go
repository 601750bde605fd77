package dto

import (
	"roombook/shared/constant"
	"roombook/shared/model"
	"roombook/shared/timezone"
)

// Metadata is the audit trail rendered on every resource.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.ModifiedAt = timezone.Format(model.ModifiedAt, constant.DateFormat)
	m.CreatedBy = model.CreatedBy
	m.ModifiedBy = model.ModifiedBy
}

// Pagination is embedded by list responses.
type Pagination struct {
	TotalPage int `json:"total_page"`
	TotalData int `json:"total_data"`
}

func (p *Pagination) FromCount(totalData, limit int) {
	p.TotalData = totalData
	p.TotalPage = TotalPages(totalData, limit)
}

// TotalPages is at least 1 so an empty listing still reports one page.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}
