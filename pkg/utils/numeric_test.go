package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueOr(t *testing.T) {
	assert.Equal(t, 7.5, ValueOr(Ptr(7.5), 0))
	assert.Equal(t, 3.0, ValueOr(nil, 3.0))
	assert.Equal(t, 0.0, ValueOr(Ptr(0), 3.0))
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name    string
		n, d    float64
		def     float64
		want    float64
	}{
		{"normal", 300, 600, 0, 0.5},
		{"zero denominator", 300, 0, -1, -1},
		{"negative denominator", 300, -5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeDivide(tt.n, tt.d, tt.def))
		})
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 25.0, Round1(24.96))
	assert.Equal(t, 11.3, Round1(11.32))
	assert.Equal(t, -2.0, Round1(-1.96))
	assert.Equal(t, 0.68, Round2(0.675))
	assert.Equal(t, 0.05, Round2(0.0499))
}
