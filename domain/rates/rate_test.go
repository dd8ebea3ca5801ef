package rates

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate_Percent(t *testing.T) {
	assert.Equal(t, "45.3%", Defined(0.453).Percent())
	assert.Equal(t, "0.0%", Defined(0).Percent())
	assert.Equal(t, "100.0%", Defined(1).Percent())
	assert.Equal(t, "-", Undefined().Percent())
}

func TestRate_SubPropagatesUndefined(t *testing.T) {
	assert.False(t, Undefined().Sub(Defined(0.5)).IsDefined())
	assert.False(t, Defined(0.5).Sub(Undefined()).IsDefined())

	v, ok := Defined(0.25).Sub(Defined(0.4)).Value()
	require.True(t, ok)
	assert.InDelta(t, -0.15, v, 1e-12)
}

func TestRate_DivGuardsDenominator(t *testing.T) {
	assert.False(t, Defined(0.5).Div(Undefined()).IsDefined())
	assert.False(t, Defined(0.5).Div(Defined(0)).IsDefined())
	assert.False(t, Undefined().Div(Defined(0.5)).IsDefined())

	v, ok := Defined(0.25).Div(Defined(0.5)).Value()
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestRate_LessOrdersUndefinedLowest(t *testing.T) {
	assert.True(t, Undefined().Less(Defined(0)))
	assert.False(t, Defined(0).Less(Undefined()))
	assert.False(t, Undefined().Less(Undefined()))
	assert.True(t, Defined(0.1).Less(Defined(0.2)))
}

func TestRate_JSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(Defined(0.5))
	require.NoError(t, err)
	assert.Equal(t, "0.5", string(out))

	out, err = json.Marshal(Undefined())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	var r Rate
	require.NoError(t, json.Unmarshal([]byte("0.25"), &r))
	v, ok := r.Value()
	require.True(t, ok)
	assert.InDelta(t, 0.25, v, 1e-12)

	require.NoError(t, json.Unmarshal([]byte("null"), &r))
	assert.False(t, r.IsDefined())
}
