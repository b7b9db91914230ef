package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFundingPrograms_SetUnset(t *testing.T) {
	var f FundingPrograms
	assert.False(t, f.HasAny())

	f.Set(FundingNEVI)
	f.SetTo(FundingCRP, true)
	assert.True(t, f.Contain(FundingNEVI|FundingCRP))
	assert.True(t, f.HasAny())
	assert.True(t, f.HasAny(FundingCFI, FundingCRP))
	assert.False(t, f.HasAny(FundingCFI, FundingCMAQ))

	f.Unset(FundingNEVI)
	f.SetTo(FundingCRP, false)
	assert.Equal(t, FundingNone, f)
}

func TestFundingPrograms_Names(t *testing.T) {
	f := FundingEVCRAA | FundingOther
	assert.Equal(t, []string{"EVC_RAA", "OTHER"}, f.Names())
	assert.Equal(t, "EVC_RAA|OTHER", f.String())
	assert.Equal(t, "none", FundingNone.String())
	assert.Equal(t, 1, f.Bit(FundingOther))
	assert.Equal(t, 0, f.Bit(FundingNEVI))
}

func TestFundingPrograms_Scan(t *testing.T) {
	want := FundingCFI | FundingCMAQ

	value, err := want.Value()
	require.NoError(t, err)

	var got FundingPrograms
	require.NoError(t, got.Scan(value))
	assert.Equal(t, want, got)

	require.NoError(t, got.Scan([]byte("4")))
	assert.Equal(t, FundingPrograms(4), got)

	require.NoError(t, got.Scan(nil))
	assert.Equal(t, FundingNone, got)

	assert.Error(t, got.Scan("NEVI"))
}

func TestFundingPrograms_JSON(t *testing.T) {
	data, err := json.Marshal(FundingNEVI)
	require.NoError(t, err)

	var f FundingPrograms
	require.NoError(t, json.Unmarshal(data, &f))
	assert.Equal(t, FundingNEVI, f)
	assert.Error(t, json.Unmarshal([]byte(`"NEVI"`), &f))
}
