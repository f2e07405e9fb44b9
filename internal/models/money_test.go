package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMoneyRounding(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("99.999"))
	require.Equal(t, "100.00", m.String())

	m, err := NewMoneyFromString("80.005")
	require.NoError(t, err)
	require.Equal(t, "80.01", m.String())

	_, err = NewMoneyFromString("not-a-number")
	require.Error(t, err)
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("1200.5"))
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `"1200.50"`, string(raw))

	var fromString Money
	require.NoError(t, json.Unmarshal([]byte(`"45.5"`), &fromString))
	require.Equal(t, "45.50", fromString.String())

	var fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`140`), &fromNumber))
	require.Equal(t, "140.00", fromNumber.String())

	var bad Money
	require.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("200.129"))
	require.Equal(t, "200.13", m.String())
}
