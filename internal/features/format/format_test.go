package format

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{9, "9.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-2500, "-2,500.00"},
		{math.NaN(), "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in), "Currency(%v)", tt.in)
	}
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "950", Compact(950))
	assert.Equal(t, "1.5K", Compact(1500))
	assert.Equal(t, "2K", Compact(2000))
	assert.Equal(t, "2M", Compact(2_000_000))
	assert.Equal(t, "-1.2M", Compact(-1_200_000))
}

func TestDates(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)

	assert.Equal(t, "2024-03-07", Date(ts))
	assert.Equal(t, "03/07", ShortDate(ts))
	assert.Equal(t, "2024-03-07 09:05:03", DateTime(ts))
	assert.Equal(t, "09:05:03", Time(ts))
	assert.Equal(t, "", Date(time.Time{}))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "0s", Duration(0))
	assert.Equal(t, "1d 2h 3m 4s", Duration(26*time.Hour+3*time.Minute+4*time.Second))
	assert.Equal(t, "5m", Duration(5*time.Minute))
}

func TestNumberAndPercent(t *testing.T) {
	assert.Equal(t, "1,234,567", Number(1234567))
	assert.Equal(t, "12.35%", Percent(12.3456, 2))
}
