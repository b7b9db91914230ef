package station

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-chart-station/pkg/types"
)

func TestInputValid(t *testing.T) {
	assert.Equal(t, "", InputValid(false, InputKindComboBox))
	assert.Equal(t, "usa-combo-box--error", InputValid(true, InputKindComboBox))
	assert.Equal(t, "usa-date-picker--error", InputValid(true, InputKindDatePicker))
	assert.Equal(t, "usa-input--error", InputValid(true, "text"))
}

func TestConvertDateFormat(t *testing.T) {
	assert.Equal(t, "2023-06-01", ConvertDateFormat("06/01/2023"))
	// 只转换格式，不校验日期
	assert.Equal(t, "2023-02-30", ConvertDateFormat("02/30/2023"))
	assert.Equal(t, "2023-06-01", ConvertDateFormat("2023-06-01"))
	assert.Equal(t, "6/1/2023", ConvertDateFormat("6/1/2023"))
	assert.Equal(t, "", ConvertDateFormat(""))
}

func TestPortCount_JSON(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"num_fed_funded_ports": 4,
		"num_non_fed_funded_ports": null
	}`), &r))
	n, ok := r.NumFedFundedPorts.Int()
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	assert.False(t, r.NumNonFedFundedPorts.Provided())

	require.NoError(t, json.Unmarshal([]byte(`{"num_fed_funded_ports": "0"}`), &r))
	assert.True(t, r.NumFedFundedPorts.Zero())

	require.NoError(t, json.Unmarshal([]byte(`{"num_fed_funded_ports": ""}`), &r))
	assert.False(t, r.NumFedFundedPorts.Provided())

	assert.Error(t, json.Unmarshal([]byte(`{"num_fed_funded_ports": true}`), &r))

	data, err := json.Marshal(struct {
		A PortCount `json:"a"`
		B PortCount `json:"b"`
		C PortCount `json:"c"`
	}{NewPortCount(3), PortCount{}, PortCountOf("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null,"c":"x"}`, string(data))
}

func TestRecord_FundingPrograms(t *testing.T) {
	r := Record{NEVI: 1, CMAQ: 1}
	f := r.FundingPrograms()
	assert.True(t, f.Contain(types.FundingNEVI|types.FundingCMAQ))
	assert.False(t, f.HasAny(types.FundingCFI))

	var back Record
	back.SetFundingPrograms(f)
	assert.Equal(t, 1, back.NEVI)
	assert.Equal(t, 1, back.CMAQ)
	assert.Equal(t, 0, back.CFI)
}

func TestField_Keys(t *testing.T) {
	for _, f := range Fields() {
		parsed, ok := ParseField(f.Key())
		assert.True(t, ok, f.Key())
		assert.Equal(t, f, parsed)
		assert.NotEmpty(t, f.Label())
	}
	_, ok := ParseField("unknown")
	assert.False(t, ok)
}
