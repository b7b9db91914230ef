package api

import (
	"time"

	"ev-chart-station/internal/repository"
	"ev-chart-station/pkg/idgen"
	"ev-chart-station/pkg/station"
	"ev-chart-station/pkg/validator"
)

// HeaderDraftID 前端表单草稿标识，用于关联重复站点冲突
const HeaderDraftID = "X-Draft-ID"

// stationRequest 校验和提交共用的请求体
type stationRequest struct {
	Station *station.Record `json:"station"`
	Options station.Options `json:"options"`
}

// stationResponse 已保存的站点
type stationResponse struct {
	ID              idgen.ID        `json:"id"`
	OrgID           string          `json:"org_id"`
	Station         *station.Record `json:"station"`
	FundingPrograms []string        `json:"funding_programs"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toResponse(m *repository.StationModel) stationResponse {
	return stationResponse{
		ID:              m.ID,
		OrgID:           m.OrgID,
		Station:         m.ToRecord(),
		FundingPrograms: m.Funding.Names(),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// errorResponse 非校验类错误
type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []*validator.FieldError `json:"fields,omitempty"`
}
