package station

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// validRecord 一条可以直接提交的联邦资助站点
func validRecord() *Record {
	return &Record{
		StationID:         "ABC123",
		Address:           "1437 Bannock St",
		City:              "Denver",
		State:             "CO",
		Zip:               "80202",
		ZipExtended:       "1234",
		Latitude:          "39.739236",
		Longitude:         "-104.990251",
		NetworkProvider:   "ChargePoint",
		ProjectType:       "New Station",
		OperationalDate:   "2023-06-01",
		FederallyFunded:   boolPtr(true),
		NEVI:              1,
		NumFedFundedPorts: NewPortCount(2),
		FedFundedPorts: []PortEntry{
			{PortID: "P1", PortType: PortTypeCCS},
			{PortID: "P2"},
		},
		AFC: intPtr(1),
	}
}

func TestCheck_ValidRecord(t *testing.T) {
	res := Check(validRecord(), Options{})

	assert.True(t, res.Valid())
	assert.Empty(t, res.IncorrectValues)
	assert.Empty(t, res.ErrorPortRowIDs)
	assert.Empty(t, res.ErrorSubrecipientRowIDs)
	for key, invalid := range res.InvalidField() {
		assert.False(t, invalid, key)
	}
}

func TestCheck_EmptyRecordWithNonFedFeature(t *testing.T) {
	res := Check(&Record{}, Options{
		Features: Features{RegisterNonFedFundedStation: true},
	})

	invalid := res.InvalidField()
	assert.False(t, res.Valid())
	assert.True(t, invalid["num_fed_funded_ports"])
	assert.False(t, invalid["num_non_fed_funded_ports"])
	assert.True(t, res.MissingRequiredMessage()["num_fed_funded_ports"])
}

func TestCheck_RunsEveryValidator(t *testing.T) {
	res := Check(&Record{}, Options{})

	missing := res.MissingRequiredMessage()
	for _, key := range []string{
		"station_id", "address", "city", "state", "zip", "zip_extended",
		"latitude", "longitude", "network_provider", "project_type",
		"operational_date", "federally_funded", "funding_type", "AFC",
		"num_fed_funded_ports",
	} {
		assert.True(t, missing[key], key)
	}
	assert.False(t, missing["nickname"])
	assert.False(t, missing["dr_id"])
}

func TestCheck_FieldStatesAreExclusive(t *testing.T) {
	r := validRecord()
	r.StationID = "ABC 123"
	r.Zip = ""
	r.Latitude = "40.1"
	r.NumFedFundedPorts = NewPortCount(5)

	res := Check(r, Options{})
	invalid := res.InvalidField()
	missing := res.MissingRequiredMessage()
	custom := res.CustomErrors()

	for key, m := range missing {
		if m {
			assert.True(t, invalid[key], "missing implies invalid: %s", key)
			assert.False(t, custom[key], "missing excludes custom: %s", key)
		}
	}
	assert.True(t, custom["station_id"])
	assert.True(t, missing["zip"])
	assert.True(t, custom["latitude"])
	assert.True(t, custom["num_fed_funded_ports_greater_than"])
	assert.Equal(t, []string{"Station ID", "Latitude", "Number of Federally Funded Ports"}, res.IncorrectValues)
}

func TestCheck_PortPolicy(t *testing.T) {
	tests := []struct {
		name           string
		features       Features
		funded         *bool
		fedRequired    bool
		nonFedRequired bool
	}{
		{"开关关闭", Features{}, boolPtr(false), true, false},
		{"开关开启且为联邦资助", Features{RegisterNonFedFundedStation: true}, boolPtr(true), true, false},
		{"开关开启且未选择", Features{RegisterNonFedFundedStation: true}, nil, true, false},
		{"开关开启且明确非联邦资助", Features{RegisterNonFedFundedStation: true}, boolPtr(false), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{FederallyFunded: tt.funded}
			res := Check(r, Options{Features: tt.features})

			assert.Equal(t, tt.fedRequired, res.State(FieldNumFedFundedPorts).IsMissing())
			assert.Equal(t, tt.nonFedRequired, res.State(FieldNumNonFedFundedPorts).IsMissing())
		})
	}
}

func TestCheck_NonFedFundedStation(t *testing.T) {
	r := validRecord()
	r.FederallyFunded = boolPtr(false)
	r.NEVI = 0
	r.NumFedFundedPorts = PortCount{}
	r.FedFundedPorts = nil
	r.NumNonFedFundedPorts = NewPortCount(1)
	r.NonFedFundedPorts = []PortEntry{{PortID: "N1"}}

	res := Check(r, Options{Features: Features{RegisterNonFedFundedStation: true}})
	assert.True(t, res.Valid(), "%v", res.States)

	res = Check(r, Options{})
	assert.False(t, res.Valid())
	assert.True(t, res.State(FieldFundingType).IsMissing())
	assert.True(t, res.State(FieldNumFedFundedPorts).IsMissing())
	assert.True(t, res.State(FieldNumNonFedFundedPorts).IsValid())
}

func TestCheck_StationFederallyFundedOption(t *testing.T) {
	r := validRecord()
	r.NumFedFundedPorts = PortCount{}
	r.FedFundedPorts = nil

	// 表单中的选择优先于记录中的值
	res := Check(r, Options{
		Features:               Features{RegisterNonFedFundedStation: true},
		StationFederallyFunded: boolPtr(false),
	})
	assert.True(t, res.State(FieldNumFedFundedPorts).IsValid())
	assert.True(t, res.State(FieldNumNonFedFundedPorts).IsMissing())
}

func TestCheck_DuplicateStationOverride(t *testing.T) {
	r := validRecord()
	r.StationID = "ABC 123"
	r.NetworkProvider = ""

	res := Check(r, Options{})
	assert.True(t, res.InvalidField()["station_id"])
	assert.True(t, res.MissingRequiredMessage()["network_provider"])
	assert.Contains(t, res.IncorrectValues, "Station ID")

	res = Check(r, Options{DuplicateStationError: true})
	assert.False(t, res.InvalidField()["station_id"])
	assert.False(t, res.InvalidField()["network_provider"])
	assert.NotContains(t, res.IncorrectValues, "Station ID")
	assert.True(t, res.Valid())
}

func TestCheck_DynamicRows(t *testing.T) {
	r := validRecord()
	r.AuthorizedSubrecipients = []string{"ORG1", "ORG1"}
	r.NumNonFedFundedPorts = NewPortCount(1)
	r.NonFedFundedPorts = []PortEntry{{PortID: "P1", RowID: "nf-1"}}

	res := Check(r, Options{})
	assert.Equal(t, []RowID{"authorized_subrecipients[1]"}, res.ErrorSubrecipientRowIDs)
	assert.Equal(t, []RowID{"nf-1"}, res.ErrorPortRowIDs)
	assert.Equal(t, Malformed(ReasonDuplicate), res.State(FieldAuthorizedSubrecipients))
	assert.True(t, res.State(FieldFedFundedPorts).IsValid())
	assert.Equal(t, Malformed(ReasonDuplicate), res.State(FieldNonFedFundedPorts))
	assert.Contains(t, res.IncorrectValues, FieldNonFedFundedPorts.Label())
}

func TestCheck_ExplicitRowsOverrideRecord(t *testing.T) {
	r := validRecord()
	res := Check(r, Options{
		Subrecipients: []SubrecipientRow{{RowID: "s1", Value: "undefined"}},
		FedPorts: []PortRow{
			{RowID: "r1", Entry: PortEntry{PortID: "P1"}},
			{RowID: "r2", Entry: PortEntry{PortID: "P1"}},
		},
	})

	assert.Equal(t, []RowID{"s1"}, res.ErrorSubrecipientRowIDs)
	assert.Equal(t, Missing(), res.State(FieldAuthorizedSubrecipients))
	assert.Equal(t, []RowID{"r2"}, res.ErrorPortRowIDs)
	assert.True(t, res.State(FieldFedFundedPorts).IsMalformed())
}

func TestCheck_ResetsBetweenCalls(t *testing.T) {
	r := validRecord()
	r.Zip = "bad"
	first := Check(r, Options{})
	require.Equal(t, []string{"ZIP"}, first.IncorrectValues)

	r.Zip = "80202"
	second := Check(r, Options{})
	assert.Empty(t, second.IncorrectValues)
	assert.True(t, second.Valid())
}

type recordingSink struct {
	calls     map[string]int
	incorrect []string
	invalid   map[string]bool
}

func (s *recordingSink) hit(name string) {
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[name]++
}

func (s *recordingSink) SetIncorrectValues(labels []string) {
	s.hit("incorrect")
	s.incorrect = labels
}
func (s *recordingSink) SetErrorSubrecipientRowIDs([]RowID) { s.hit("subrecipients") }
func (s *recordingSink) SetErrorPortRowIDs([]RowID)         { s.hit("ports") }
func (s *recordingSink) SetInvalidField(m map[string]bool) {
	s.hit("invalid")
	s.invalid = m
}
func (s *recordingSink) SetMissingRequiredMessage(map[string]bool) { s.hit("missing") }
func (s *recordingSink) SetCustomErrors(map[string]bool)           { s.hit("custom") }

func TestCheckValidData(t *testing.T) {
	sink := &recordingSink{}
	r := validRecord()
	r.Longitude = "-104.99"

	ok := CheckValidData(r, Options{}, sink)
	assert.False(t, ok)
	for _, name := range []string{"incorrect", "subrecipients", "ports", "invalid", "missing", "custom"} {
		assert.Equal(t, 1, sink.calls[name], name)
	}
	assert.Equal(t, []string{"Longitude"}, sink.incorrect)
	assert.True(t, sink.invalid["longitude"])

	assert.True(t, CheckValidData(validRecord(), Options{}, nil))
}

func TestResult_MarshalJSON(t *testing.T) {
	r := validRecord()
	r.NumFedFundedPorts = NewPortCount(0)

	data, err := json.Marshal(Check(r, Options{}))
	require.NoError(t, err)

	var out struct {
		Valid        bool                  `json:"valid"`
		Fields       map[string]FieldState `json:"fields"`
		CustomErrors map[string]bool       `json:"custom_errors"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.False(t, out.Valid)
	assert.Equal(t, Malformed(ReasonZero), out.Fields["num_fed_funded_ports"])
	assert.True(t, out.CustomErrors["num_fed_funded_ports_zero"])
	assert.False(t, out.CustomErrors["num_fed_funded_ports"])
}
