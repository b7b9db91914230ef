package station

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"ev-chart-station/pkg/types"
	"ev-chart-station/pkg/validator"
)

// 端口类型
const (
	PortTypeJ1772   = "J1772"
	PortTypeCCS     = "CCS"
	PortTypeCHAdeMO = "CHAdeMO"
	PortTypeJ3400   = "J3400"
	PortTypeOther   = "OTHER"
)

// 长度上限
const (
	MaxStationIDLength = 36
	MaxPortIDLength    = 36
	MaxNicknameLength  = 50
	MaxAddressLength   = 255
	MaxCityLength      = 100
	MaxPortCount       = 999
	MaxSubrecipients   = 100
	MaxOrgIDLength     = 64
)

// stateUnset 下拉框未选择时前端提交的值
const stateUnset = "undefined"

// Record 站点注册记录，JSON 字段名与前端表单一致
type Record struct {
	StationID       string `json:"station_id"`
	Nickname        string `json:"nickname"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	Zip             string `json:"zip"`
	ZipExtended     string `json:"zip_extended"`
	Latitude        string `json:"latitude"`
	Longitude       string `json:"longitude"`
	NetworkProvider string `json:"network_provider"`
	ProjectType     string `json:"project_type"`
	OperationalDate string `json:"operational_date"`

	// FederallyFunded 三态：nil 表示未选择
	FederallyFunded *bool `json:"federally_funded"`
	NEVI            int   `json:"NEVI"`
	CFI             int   `json:"CFI"`
	EVCRAA          int   `json:"EVC_RAA"`
	CMAQ            int   `json:"CMAQ"`
	CRP             int   `json:"CRP"`
	Other           int   `json:"OTHER"`

	NumFedFundedPorts    PortCount   `json:"num_fed_funded_ports"`
	FedFundedPorts       []PortEntry `json:"fed_funded_ports" validate:"dive"`
	NumNonFedFundedPorts PortCount   `json:"num_non_fed_funded_ports"`
	NonFedFundedPorts    []PortEntry `json:"non_fed_funded_ports" validate:"dive"`

	AuthorizedSubrecipients []string `json:"authorized_subrecipients"`
	DRID                    string   `json:"dr_id"`
	AFC                     *int     `json:"AFC"`
}

// PortEntry 单个充电端口
type PortEntry struct {
	PortID   string `json:"port_id"`
	PortType string `json:"port_type,omitempty" validate:"omitempty,oneof=J1772 CCS CHAdeMO J3400 OTHER"`
	// RowID 前端动态行标识，未提交时按位置生成
	RowID RowID `json:"row_id,omitempty"`
}

// FundingPrograms 将六个 0/1 项目字段合并为位集合
func (r *Record) FundingPrograms() types.FundingPrograms {
	var f types.FundingPrograms
	f.SetTo(types.FundingNEVI, r.NEVI == 1)
	f.SetTo(types.FundingCFI, r.CFI == 1)
	f.SetTo(types.FundingEVCRAA, r.EVCRAA == 1)
	f.SetTo(types.FundingCMAQ, r.CMAQ == 1)
	f.SetTo(types.FundingCRP, r.CRP == 1)
	f.SetTo(types.FundingOther, r.Other == 1)
	return f
}

// SetFundingPrograms 按位集合回填六个项目字段
func (r *Record) SetFundingPrograms(f types.FundingPrograms) {
	r.NEVI = f.Bit(types.FundingNEVI)
	r.CFI = f.Bit(types.FundingCFI)
	r.EVCRAA = f.Bit(types.FundingEVCRAA)
	r.CMAQ = f.Bit(types.FundingCMAQ)
	r.CRP = f.Bit(types.FundingCRP)
	r.Other = f.Bit(types.FundingOther)
}

// fundingFlags 六个项目字段的原始值
func (r *Record) fundingFlags() []int {
	return []int{r.NEVI, r.CFI, r.EVCRAA, r.CMAQ, r.CRP, r.Other}
}

// RuleValidation 请求层面的结构规则，字段内容的校验由 Check 负责
// 编辑时表单来自已登记的站点，唯一键两项不能为空
func (r *Record) RuleValidation() map[validator.ValidateScene]map[string]string {
	return map[validator.ValidateScene]map[string]string{
		validator.SceneCreate | validator.SceneUpdate: {
			FieldFedFundedPorts.Key():          fmt.Sprintf("max=%d", MaxPortCount),
			FieldNonFedFundedPorts.Key():       fmt.Sprintf("max=%d", MaxPortCount),
			FieldAuthorizedSubrecipients.Key(): fmt.Sprintf("max=%d,dive,max=%d", MaxSubrecipients, MaxOrgIDLength),
			FieldDRID.Key():                    fmt.Sprintf("max=%d", MaxOrgIDLength),
		},
		validator.SceneUpdate: {
			FieldStationID.Key():       "required",
			FieldNetworkProvider.Key(): "required",
		},
	}
}

// CustomValidation 请求层面的检查：动态行标识在两类端口之间必须唯一
func (r *Record) CustomValidation(_ validator.ValidateScene, report validator.FuncReportError) {
	seen := make(map[RowID]bool)
	check := func(list string, ports []PortEntry) {
		for i, p := range ports {
			if p.RowID == "" {
				continue
			}
			if seen[p.RowID] {
				report(fmt.Sprintf("%s[%d].row_id", list, i), "unique", "")
				continue
			}
			seen[p.RowID] = true
		}
	}
	check(FieldFedFundedPorts.Key(), r.FedFundedPorts)
	check(FieldNonFedFundedPorts.Key(), r.NonFedFundedPorts)
}

// PortCount 端口数量，前端可能提交 null、数字或字符串
type PortCount struct {
	raw string
	set bool
}

// NewPortCount 由整数构造
func NewPortCount(n int) PortCount {
	return PortCount{raw: strconv.Itoa(n), set: true}
}

// PortCountOf 由表单输入框的原始字符串构造
func PortCountOf(s string) PortCount {
	return PortCount{raw: s, set: true}
}

// Provided 非 null 且非空字符串
func (c PortCount) Provided() bool {
	return c.set && strings.TrimSpace(c.raw) != ""
}

// Int 解析为整数，未填写或不是整数时返回 false
// 2.0、2e0 这类值为整数的数字同样接受，与前端 Number() 一致
func (c PortCount) Int() (int, bool) {
	if !c.Provided() {
		return 0, false
	}
	s := strings.TrimSpace(c.raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Zero 已填写且值为 0
func (c PortCount) Zero() bool {
	n, ok := c.Int()
	return ok && n == 0
}

// String 原始值，null 返回空字符串
func (c PortCount) String() string {
	return c.raw
}

// MarshalJSON 整数输出为数字，其余按原样输出为字符串
func (c PortCount) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	if n, ok := c.Int(); ok {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(c.raw)
}

// UnmarshalJSON 接受 null、数字和字符串
func (c *PortCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = PortCount{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = PortCountOf(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("port count: %w", err)
	}
	*c = PortCountOf(n.String())
	return nil
}
