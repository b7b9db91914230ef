package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-chart-station/pkg/validator"
)

const validStationJSON = `{
  "station_id": "ABC123",
  "address": "1437 Bannock St",
  "city": "Denver",
  "state": "CO",
  "zip": "80202",
  "zip_extended": "1234",
  "latitude": "39.739236",
  "longitude": "-104.990251",
  "network_provider": "ChargePoint",
  "project_type": "New Station",
  "operational_date": "2023-06-01",
  "federally_funded": true,
  "NEVI": 1,
  "num_fed_funded_ports": 1,
  "fed_funded_ports": [{"port_id": "P1"}],
  "dr_id": "",
  "AFC": 0
}`

func runValidate(t *testing.T, content string, flags ...string) (map[string]any, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "station.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"validate", path}, flags...))
	err := root.Execute()

	var res map[string]any
	if out.Len() > 0 {
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	}
	return res, err
}

func TestValidateCmd_Valid(t *testing.T) {
	res, err := runValidate(t, validStationJSON)
	require.NoError(t, err)
	assert.Equal(t, true, res["valid"])
}

func TestValidateCmd_Invalid(t *testing.T) {
	res, err := runValidate(t, `{"station_id": "ABC 123"}`)
	assert.ErrorIs(t, err, ErrInvalidStation)
	assert.Equal(t, false, res["valid"])
	assert.Equal(t, true, res["custom_errors"].(map[string]any)["station_id"])
}

func TestValidateCmd_Flags(t *testing.T) {
	var st map[string]any
	require.NoError(t, json.Unmarshal([]byte(validStationJSON), &st))
	st["station_id"] = "ABC 123"
	st["dr_id"] = ""
	data, err := json.Marshal(st)
	require.NoError(t, err)

	res, err := runValidate(t, string(data), "--duplicate", "--sr-adds")
	assert.ErrorIs(t, err, ErrInvalidStation)
	invalid := res["invalid_field"].(map[string]any)
	assert.Equal(t, false, invalid["station_id"])
	assert.Equal(t, true, invalid["dr_id"])
}

func TestValidateCmd_BadInput(t *testing.T) {
	_, err := runValidate(t, "not json")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidStation)

	root := newRootCmd()
	root.SetArgs([]string{"validate"})
	assert.Error(t, root.Execute())
}

func TestValidateCmd_MalformedPayload(t *testing.T) {
	var st map[string]any
	require.NoError(t, json.Unmarshal([]byte(validStationJSON), &st))
	st["fed_funded_ports"] = []map[string]any{{"port_id": "P1", "port_type": "Tesla"}}
	data, err := json.Marshal(st)
	require.NoError(t, err)

	res, err := runValidate(t, string(data))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidStation)
	assert.Contains(t, err.Error(), "port_type")
	assert.Nil(t, res)

	var fe *validator.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "oneof", fe.Tag)
}
