package repository

import (
	"time"

	"ev-chart-station/pkg/idgen"
	"ev-chart-station/pkg/station"
	"ev-chart-station/pkg/types"
)

// StationModel 站点表
// station_id + network_provider 全局唯一
type StationModel struct {
	ID    idgen.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OrgID string   `gorm:"size:64;not null;index" json:"org_id"`

	StationID       string `gorm:"size:36;not null;uniqueIndex:uk_station_provider" json:"station_id"`
	NetworkProvider string `gorm:"size:100;not null;uniqueIndex:uk_station_provider" json:"network_provider"`

	Nickname        string `gorm:"size:50" json:"nickname"`
	Address         string `gorm:"size:255" json:"address"`
	City            string `gorm:"size:100" json:"city"`
	State           string `gorm:"size:32" json:"state"`
	Zip             string `gorm:"size:5" json:"zip"`
	ZipExtended     string `gorm:"size:4" json:"zip_extended"`
	Latitude        string `gorm:"size:16" json:"latitude"`
	Longitude       string `gorm:"size:16" json:"longitude"`
	ProjectType     string `gorm:"size:64" json:"project_type"`
	OperationalDate string `gorm:"size:10" json:"operational_date"`

	FederallyFunded *bool                 `json:"federally_funded"`
	Funding         types.FundingPrograms `gorm:"column:funding_programs;not null;default:0" json:"funding_programs"`

	NumFedFundedPorts    *int                               `json:"num_fed_funded_ports"`
	FedFundedPorts       types.JSONList[station.PortEntry] `json:"fed_funded_ports"`
	NumNonFedFundedPorts *int                               `json:"num_non_fed_funded_ports"`
	NonFedFundedPorts    types.JSONList[station.PortEntry] `json:"non_fed_funded_ports"`

	AuthorizedSubrecipients types.JSONList[string] `json:"authorized_subrecipients"`
	DRID                    string                 `gorm:"column:dr_id;size:64" json:"dr_id"`
	AFC                     *int                   `gorm:"column:afc" json:"AFC"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StationModel) TableName() string {
	return "stations"
}

// FromRecord 由表单记录构造，不设置 ID
func FromRecord(orgID string, r *station.Record) *StationModel {
	m := &StationModel{OrgID: orgID}
	m.apply(r)
	return m
}

// apply 用表单记录覆盖可编辑字段
func (m *StationModel) apply(r *station.Record) {
	m.StationID = r.StationID
	m.NetworkProvider = r.NetworkProvider
	m.Nickname = r.Nickname
	m.Address = r.Address
	m.City = r.City
	m.State = r.State
	m.Zip = r.Zip
	m.ZipExtended = r.ZipExtended
	m.Latitude = r.Latitude
	m.Longitude = r.Longitude
	m.ProjectType = r.ProjectType
	m.OperationalDate = r.OperationalDate
	m.FederallyFunded = r.FederallyFunded
	m.Funding = r.FundingPrograms()
	m.NumFedFundedPorts = countPtr(r.NumFedFundedPorts)
	m.FedFundedPorts = r.FedFundedPorts
	m.NumNonFedFundedPorts = countPtr(r.NumNonFedFundedPorts)
	m.NonFedFundedPorts = r.NonFedFundedPorts
	m.AuthorizedSubrecipients = r.AuthorizedSubrecipients
	m.DRID = r.DRID
	m.AFC = r.AFC
}

// ToRecord 还原为表单记录
func (m *StationModel) ToRecord() *station.Record {
	r := &station.Record{
		StationID:               m.StationID,
		Nickname:                m.Nickname,
		Address:                 m.Address,
		City:                    m.City,
		State:                   m.State,
		Zip:                     m.Zip,
		ZipExtended:             m.ZipExtended,
		Latitude:                m.Latitude,
		Longitude:               m.Longitude,
		NetworkProvider:         m.NetworkProvider,
		ProjectType:             m.ProjectType,
		OperationalDate:         m.OperationalDate,
		FederallyFunded:         m.FederallyFunded,
		NumFedFundedPorts:       countOf(m.NumFedFundedPorts),
		FedFundedPorts:          m.FedFundedPorts,
		NumNonFedFundedPorts:    countOf(m.NumNonFedFundedPorts),
		NonFedFundedPorts:       m.NonFedFundedPorts,
		AuthorizedSubrecipients: m.AuthorizedSubrecipients,
		DRID:                    m.DRID,
		AFC:                     m.AFC,
	}
	r.SetFundingPrograms(m.Funding)
	return r
}

// Key 唯一键的可读形式，用于日志
func (m *StationModel) Key() string {
	return m.StationID + "@" + m.NetworkProvider + "#" + m.ID.String()
}

func countPtr(c station.PortCount) *int {
	n, ok := c.Int()
	if !ok {
		return nil
	}
	return &n
}

func countOf(n *int) station.PortCount {
	if n == nil {
		return station.PortCount{}
	}
	return station.NewPortCount(*n)
}
