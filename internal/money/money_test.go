package money_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hellaspet/backend-insurance/internal/money"
)

func TestParseAndString(t *testing.T) {
	m, err := money.Parse(" 207.2 ")
	require.NoError(t, err)
	require.Equal(t, "207.20", m.String())
	require.Equal(t, "207.20€", m.DisplayEuro())

	_, err = money.Parse("999kg-invalid")
	require.Error(t, err)
}

func TestMulRoundHalfUp(t *testing.T) {
	// 261.09 * 1.05 = 274.1445 -> 274.14, then * 1.20 = 328.968 -> 328.97.
	base := money.MustParse("261.09")
	after5 := base.MulRound(decimal.NewFromFloat(1.05))
	require.Equal(t, "274.14", after5.String())
	after20 := after5.MulRound(decimal.NewFromFloat(1.20))
	require.Equal(t, "328.97", after20.String())

	// Exact half rounds up, not to even.
	half := money.MustParse("1.00").MulRound(decimal.RequireFromString("0.125"))
	require.Equal(t, "0.13", half.String())
}

func TestWithinTolerance(t *testing.T) {
	a := money.MustParse("207.20")
	b := money.MustParse("207.21")
	tol := money.MustParse("0.01")
	require.True(t, a.Within(b, tol))
	require.False(t, a.Within(money.MustParse("207.23"), tol))
}

func TestRatioRoundTrip(t *testing.T) {
	authoritative := money.MustParse("376.97")
	gross := money.MustParse("261.09")
	scale := authoritative.Ratio(gross)
	require.Equal(t, "376.97", gross.MulRound(scale).String())
}

func TestJSON(t *testing.T) {
	m := money.MustParse("28.00")
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `"28.00"`, string(raw))

	var back money.Money
	require.NoError(t, json.Unmarshal([]byte(`"14"`), &back))
	require.Equal(t, "14.00", back.String())
	require.NoError(t, json.Unmarshal([]byte(`7.0`), &back))
	require.Equal(t, "7.00", back.String())
}
