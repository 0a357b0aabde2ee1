package numbers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"nil", nil, 0, false},
		{"int", 7, 7, true},
		{"int64", int64(9), 9, true},
		{"float", 2.5, 2.5, true},
		{"string", " 42 ", 42, true},
		{"decimal_string", "12.3", 12.3, true},
		{"not_out_marker", "45*", 45, true},
		{"thousands", "1,204", 1204, true},
		{"dash", "-", 0, false},
		{"empty", "", 0, false},
		{"garbage", "abc", 0, false},
		{"nan", math.NaN(), 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Float(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestFloatOr_DefaultOnFailure(t *testing.T) {
	assert.Equal(t, 0.0, FloatOr("n/a", 0))
	assert.Equal(t, 3.0, FloatOr("3", 0))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 16.67, Round(100.0/6, 2))
	assert.Equal(t, 0.12, Round(0.125, 2))
	assert.Equal(t, 0.38, Round(0.375, 2))
	assert.Equal(t, 3.2, Round(3.25, 1))
	assert.Equal(t, 3.4, Round(3.35, 1))
	assert.Equal(t, -2.0, Round(-2.5, 0))
	assert.Equal(t, 2.12, Round(17.0/8, 2))
}
