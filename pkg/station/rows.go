package station

import (
	"fmt"

	"github.com/google/uuid"
)

// RowID 前端动态行（端口、子受助方）的标识
type RowID string

// NewRowID 生成新的行标识，供新增动态行时使用
func NewRowID() RowID {
	return RowID(uuid.NewString())
}

// SubrecipientRow 一行已选择的子受助方
type SubrecipientRow struct {
	RowID RowID  `json:"row_id"`
	Value string `json:"value"`
}

// PortRow 一行端口
type PortRow struct {
	RowID RowID     `json:"row_id"`
	Entry PortEntry `json:"entry"`
}

// SubrecipientRows 由记录中的子受助方列表生成行，行标识按位置生成
func (r *Record) SubrecipientRows() []SubrecipientRow {
	rows := make([]SubrecipientRow, len(r.AuthorizedSubrecipients))
	for i, v := range r.AuthorizedSubrecipients {
		rows[i] = SubrecipientRow{
			RowID: positionalRowID(FieldAuthorizedSubrecipients, i),
			Value: v,
		}
	}
	return rows
}

// FedPortRows 联邦资助端口行
func (r *Record) FedPortRows() []PortRow {
	return portRows(FieldFedFundedPorts, r.FedFundedPorts)
}

// NonFedPortRows 非联邦资助端口行
func (r *Record) NonFedPortRows() []PortRow {
	return portRows(FieldNonFedFundedPorts, r.NonFedFundedPorts)
}

func portRows(list Field, ports []PortEntry) []PortRow {
	rows := make([]PortRow, len(ports))
	for i, p := range ports {
		id := p.RowID
		if id == "" {
			id = positionalRowID(list, i)
		}
		rows[i] = PortRow{RowID: id, Entry: p}
	}
	return rows
}

func positionalRowID(list Field, i int) RowID {
	return RowID(fmt.Sprintf("%s[%d]", list.Key(), i))
}
