package station

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-chart-station/pkg/validator"
)

func namespaces(errs []*validator.FieldError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Namespace)
	}
	return out
}

func TestRecord_RuleValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Record)
		scene  validator.ValidateScene
		want   []string
	}{
		{"有效记录创建", func(r *Record) {}, validator.SceneCreate, nil},
		{"有效记录编辑", func(r *Record) {}, validator.SceneUpdate, nil},
		{"创建时唯一键为空交给校验引擎", func(r *Record) {
			r.StationID = ""
			r.NetworkProvider = ""
		}, validator.SceneCreate, nil},
		{"编辑时唯一键为空", func(r *Record) {
			r.StationID = ""
			r.NetworkProvider = ""
		}, validator.SceneUpdate, []string{"network_provider", "station_id"}},
		{"直接受助方超长", func(r *Record) {
			r.DRID = strings.Repeat("x", MaxOrgIDLength+1)
		}, validator.SceneCreate, []string{"dr_id"}},
		{"子受助方过多", func(r *Record) {
			r.AuthorizedSubrecipients = make([]string, MaxSubrecipients+1)
		}, validator.SceneUpdate, []string{"authorized_subrecipients"}},
		{"端口类型不支持", func(r *Record) {
			r.FedFundedPorts[1].PortType = "Tesla"
		}, validator.SceneCreate, []string{"Record.fed_funded_ports[1].port_type"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.modify(r)
			assert.Equal(t, tt.want, namespaces(validator.Validate(r, tt.scene)))
		})
	}
}

func TestPortCount_IntegralNumbers(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
		ok   bool
	}{
		{"整数", `4`, 4, true},
		{"小数点后为0", `2.0`, 2, true},
		{"科学计数法", `2e0`, 2, true},
		{"字符串小数点后为0", `"3.0"`, 3, true},
		{"零", `0.0`, 0, true},
		{"非整数", `2.5`, 0, false},
		{"非数字字符串", `"NaN"`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c PortCount
			require.NoError(t, json.Unmarshal([]byte(tt.data), &c))
			n, ok := c.Int()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}

	r := fedRecord(PortCountOf("2.0"), 2)
	states, labels := ValidatePortCount(true, FederalBucket, r, FieldStates{})
	assert.True(t, states.Get(FieldNumFedFundedPorts).IsValid())
	assert.Empty(t, labels)

	data, err := json.Marshal(PortCountOf("2e0"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))
}

func TestFlagPortRows_UTF16Length(t *testing.T) {
	// U+1F50C 在 UTF-16 中占两个码元
	plug := "\U0001F50C"
	fits := strings.Repeat("a", MaxPortIDLength-2) + plug
	tooLong := strings.Repeat("a", MaxPortIDLength-1) + plug

	rows := []PortRow{
		{RowID: "r1", Entry: PortEntry{PortID: fits}},
		{RowID: "r2", Entry: PortEntry{PortID: tooLong}},
	}
	flagged, fedHit, _ := FlagPortRows(rows, nil)
	assert.Equal(t, []RowID{"r2"}, flagged)
	assert.True(t, fedHit)
}
