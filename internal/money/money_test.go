package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- arithmetic --

func TestAddSub_AreExact(t *testing.T) {
	a := MustParse("0.10")
	b := MustParse("0.20")

	assert.True(t, a.Add(b).Equal(MustParse("0.30")))
	assert.True(t, b.Sub(a).Equal(MustParse("0.10")))
}

func TestSum_Empty(t *testing.T) {
	assert.True(t, Sum().IsZero())
	assert.True(t, Sum(FromInt(1), FromInt(2), MustParse("0.5")).Equal(MustParse("3.5")))
}

func TestRatio_ZeroDenominator(t *testing.T) {
	assert.True(t, FromInt(5).Ratio(Zero()).IsZero())
	assert.True(t, FromInt(180).Ratio(FromInt(200)).Equal(decimal.RequireFromString("0.9")))
}

func TestPercent(t *testing.T) {
	assert.True(t, FromInt(50).Percent(FromInt(200)).Equal(decimal.NewFromInt(25)))
	assert.True(t, FromInt(50).Percent(Zero()).IsZero())
	assert.True(t, FromInt(50).Percent(FromInt(-10)).IsZero(), "negative base yields zero")
}

func TestClampZero(t *testing.T) {
	assert.True(t, FromInt(-3).ClampZero().IsZero())
	assert.True(t, FromInt(3).ClampZero().Equal(FromInt(3)))
}

func TestZeroValue_IsUsable(t *testing.T) {
	var m Money
	assert.True(t, m.IsZero())
	assert.True(t, m.Add(FromInt(4)).Equal(FromInt(4)))
	assert.Equal(t, "0", m.String())
}

// -- parsing and encoding --

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("twelve")
	assert.Error(t, err)
}

func TestJSON_EncodesAsString(t *testing.T) {
	data, err := json.Marshal(MustParse("12.50"))
	require.NoError(t, err)
	assert.Equal(t, `"12.5"`, string(data))
}

func TestJSON_AcceptsNumberAndString(t *testing.T) {
	var fromString, fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`"42.10"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`42.10`), &fromNumber))

	assert.True(t, fromString.Equal(fromNumber))
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &fromString))
}

func TestJSON_RejectsUnbalancedQuotes(t *testing.T) {
	for _, raw := range []string{`"12.5`, `12.5"`, `""12.5""`} {
		var m Money
		assert.Error(t, m.UnmarshalJSON([]byte(raw)), raw)
	}
}

func TestJSON_NullKeepsValue(t *testing.T) {
	m := MustParse("7.25")
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.True(t, m.Equal(MustParse("7.25")))

	var body struct {
		Amount Money `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount":null}`), &body))
	assert.True(t, body.Amount.IsZero())
}

func TestFitsCents(t *testing.T) {
	assert.True(t, MustParse("12").FitsCents())
	assert.True(t, MustParse("12.5").FitsCents())
	assert.True(t, MustParse("12.3400").FitsCents())
	assert.True(t, MustParse("-0.01").FitsCents())
	assert.False(t, MustParse("12.345").FitsCents())
	assert.False(t, MustParse("0.001").FitsCents())
}

func TestScanValue(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("19.99"))
	assert.True(t, m.Equal(MustParse("19.99")))

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "19.99", v)
}
