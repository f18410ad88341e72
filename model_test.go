package img2ascii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModel(t *testing.T) {
	t.Parallel()

	cases := map[string]Model{
		"":            Luminosity,
		"   ":         Luminosity,
		"1":           Average,
		"2":           Lightness,
		"3":           Luminosity,
		"average":     Average,
		"Lightness":   Lightness,
		" LUMINOSITY": Luminosity,
	}
	for in, want := range cases {
		got, err := ParseModel(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseModelRejectsUnknown(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"0", "4", "-1", "brightness", "avg"} {
		_, err := ParseModel(in)
		var modelErr *InvalidModelError
		assert.ErrorAs(t, err, &modelErr, "input %q", in)
	}
}

func TestModelText(t *testing.T) {
	t.Parallel()

	for _, m := range Models() {
		text, err := m.MarshalText()
		require.NoError(t, err)

		var back Model
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, m, back)
	}

	_, err := Model(9).MarshalText()
	var modelErr *InvalidModelError
	assert.ErrorAs(t, err, &modelErr)
	assert.Equal(t, "Model(9)", Model(9).String())
}

func TestPixelFuncs(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 20.333, averageOf([]uint8{10, 20, 31}), 0.001)
	assert.InDelta(t, 20.5, lightnessOf([]uint8{10, 20, 31}), 1e-9)
	assert.InDelta(t, 143.0, luminosityOf([]uint8{100, 150, 200}), 1e-9)

	// alpha is ignored by luminosity
	assert.Equal(t, luminosityOf([]uint8{100, 150, 200}), luminosityOf([]uint8{100, 150, 200, 0}))

	// single channel
	assert.Equal(t, 42.0, averageOf([]uint8{42}))
	assert.Equal(t, 42.0, lightnessOf([]uint8{42}))
	assert.InDelta(t, 42.0, luminosityOf([]uint8{42}), 1e-9)
	assert.InDelta(t, 42.0, luminosityOf([]uint8{42, 7}), 1e-9)
}
