package station

// Field 站点表单字段标识，封闭集合
type Field int

// 表单字段，顺序即校验顺序，也是汇总横幅中标签的顺序
const (
	FieldStationID Field = iota
	FieldNickname
	FieldAddress
	FieldCity
	FieldStateCode
	FieldZip
	FieldZipExtended
	FieldLatitude
	FieldLongitude
	FieldNetworkProvider
	FieldProjectType
	FieldOperationalDate
	FieldFederallyFunded
	FieldFundingType
	FieldAFC
	FieldDRID
	FieldNumFedFundedPorts
	FieldFedFundedPorts
	FieldNumNonFedFundedPorts
	FieldNonFedFundedPorts
	FieldAuthorizedSubrecipients

	fieldCount
)

type fieldInfo struct {
	key   string
	label string
}

var fieldInfos = [fieldCount]fieldInfo{
	FieldStationID:               {"station_id", "Station ID"},
	FieldNickname:                {"nickname", "Station Nickname"},
	FieldAddress:                 {"address", "Station Address"},
	FieldCity:                    {"city", "City"},
	FieldStateCode:               {"state", "State"},
	FieldZip:                     {"zip", "ZIP"},
	FieldZipExtended:             {"zip_extended", "ZIP Extended"},
	FieldLatitude:                {"latitude", "Latitude"},
	FieldLongitude:               {"longitude", "Longitude"},
	FieldNetworkProvider:         {"network_provider", "Network Provider"},
	FieldProjectType:             {"project_type", "Project Type"},
	FieldOperationalDate:         {"operational_date", "Operational Date"},
	FieldFederallyFunded:         {"federally_funded", "Federally Funded"},
	FieldFundingType:             {"funding_type", "Funding Type"},
	FieldAFC:                     {"AFC", "AFC"},
	FieldDRID:                    {"dr_id", "Direct Recipient"},
	FieldNumFedFundedPorts:       {"num_fed_funded_ports", "Number of Federally Funded Ports"},
	FieldFedFundedPorts:          {"fed_funded_ports", "Federally Funded Port IDs"},
	FieldNumNonFedFundedPorts:    {"num_non_fed_funded_ports", "Number of Non-Federally Funded Ports"},
	FieldNonFedFundedPorts:       {"non_fed_funded_ports", "Non-Federally Funded Port IDs"},
	FieldAuthorizedSubrecipients: {"authorized_subrecipients", "Authorized Subrecipients"},
}

var fieldsByKey = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		m[fieldInfos[f].key] = f
	}
	return m
}()

// Fields 返回所有字段，按校验顺序
func Fields() []Field {
	fields := make([]Field, fieldCount)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// ParseField 通过表单字段名查找字段
func ParseField(key string) (Field, bool) {
	f, ok := fieldsByKey[key]
	return f, ok
}

// Key 表单字段名
func (f Field) Key() string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return fieldInfos[f].key
}

// Label 汇总横幅中显示的字段名
func (f Field) Label() string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return fieldInfos[f].label
}

// String 实现 fmt.Stringer 接口
func (f Field) String() string {
	return f.Key()
}

// MarshalText 使 Field 可以作为 JSON map 的键
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.Key()), nil
}
