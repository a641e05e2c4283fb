package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoneyPercent(t *testing.T) {
	tests := []struct {
		value    Money
		percent  float64
		expected Money
	}{
		{2000, 0.05, 100},
		{2000, 0.01, 20},
		{5000, 0.05, 250},
		{5000, 0.01, 50},
		{1000, 0.05, 50},
		{0, 0.05, 0},
	}

	for _, ts := range tests {
		require.InDelta(t, float64(ts.expected), float64(ts.value.Percent(ts.percent)), 1e-9,
			"value=%v percent=%v", ts.value, ts.percent)
	}
}

func TestMoneyDisplay(t *testing.T) {
	tests := []struct {
		value    Money
		expected string
	}{
		{100, "100.00"},
		{49.995, "49.99"},
		{0.1, "0.10"},
		{1234.5, "1234.50"},
	}

	for _, ts := range tests {
		require.Equal(t, ts.expected, ts.value.Display(), "value=%v", ts.value)
	}
}

func TestMoneyAdd(t *testing.T) {
	require.InDelta(t, 150.0, Money(100).Add(50).Float64(), 1e-9)
	require.InDelta(t, 0.3, Money(0.1).Add(0.2).Float64(), 1e-9)
}
