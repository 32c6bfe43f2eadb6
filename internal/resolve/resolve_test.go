package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		bands []string
		want  float64
	}{
		{"10 ohm", []string{"brown", "black", "black", "brown"}, 10},
		{"270k", []string{"red", "violet", "yellow", "gold"}, 270_000},
		{"68 with grey", []string{"blue", "grey", "black", "brown"}, 68},
		{"68 with gray", []string{"blue", "gray", "black", "brown"}, 68},
		{"99 gigaohm", []string{"white", "white", "white", "gold"}, 99e9},
		{"zero", []string{"black", "black", "black", "gold"}, 0},
		{"gold multiplier", []string{"red", "red", "gold", "brown"}, 2.2},
		{"silver multiplier", []string{"red", "red", "silver", "brown"}, 0.22},
		{"tolerance ignored", []string{"brown", "black", "black", "white"}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.bands)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestResolveNormalizesInput(t *testing.T) {
	got, err := Resolve([]string{"  ReD ", "VIOLET", "Yellow", " gold"})
	require.NoError(t, err)
	assert.InDelta(t, 270_000.0, got, 1e-9)
}

func TestResolveWrongBandCount(t *testing.T) {
	_, err := Resolve([]string{"red", "red", "red"})
	assert.ErrorIs(t, err, ErrWrongBandCount)

	_, err = Resolve([]string{"red", "red", "red", "red", "red"})
	assert.ErrorIs(t, err, ErrWrongBandCount)

	_, err = Resolve(nil)
	assert.ErrorIs(t, err, ErrWrongBandCount)
}

func TestResolveInvalidColors(t *testing.T) {
	_, err := Resolve([]string{"gold", "black", "black", "brown"})
	assert.ErrorIs(t, err, ErrInvalidDigitColor)

	_, err = Resolve([]string{"brown", "silver", "black", "brown"})
	assert.ErrorIs(t, err, ErrInvalidDigitColor)

	_, err = Resolve([]string{"brown", "black", "magenta", "brown"})
	assert.ErrorIs(t, err, ErrInvalidMultiplierColor)

	_, err = Resolve([]string{"chartreuse", "black", "black", "brown"})
	assert.ErrorIs(t, err, ErrInvalidDigitColor)
}

func TestFormatOhms(t *testing.T) {
	assert.Equal(t, "0.00", FormatOhms(0))
	assert.Equal(t, "10.00", FormatOhms(10))
	assert.Equal(t, "0.22", FormatOhms(0.22))
	assert.Equal(t, "999.00", FormatOhms(999))
	assert.Equal(t, "1.00k", FormatOhms(1_000))
	assert.Equal(t, "270.00k", FormatOhms(270_000))
	assert.Equal(t, "1.00M", FormatOhms(1_000_000))
	assert.Equal(t, "4.70M", FormatOhms(4_700_000))
}
