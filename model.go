package img2ascii

import (
	"strconv"
	"strings"
)

// Model selects how a pixel's channels are reduced to one brightness value.
type Model int

const (
	// Average is the mean of all channels.
	Average Model = iota + 1
	// Lightness is the midpoint of the brightest and darkest channel.
	Lightness
	// Luminosity weights the first three channels 0.21/0.72/0.07, matching
	// the eye's sensitivity to green. Grayscale pixels reduce to their
	// gray level.
	Luminosity
)

// DefaultModel is used when no model is specified.
const DefaultModel = Luminosity

// Luminosity weights for channels 0, 1 and 2.
const (
	LumaR = 0.21
	LumaG = 0.72
	LumaB = 0.07
)

var modelNames = map[Model]string{
	Average:    "average",
	Lightness:  "lightness",
	Luminosity: "luminosity",
}

// Models lists every model in ordinal order.
func Models() []Model {
	return []Model{Average, Lightness, Luminosity}
}

func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return "Model(" + strconv.Itoa(int(m)) + ")"
}

// Valid reports whether m is one of the three known models.
func (m Model) Valid() bool {
	_, ok := modelNames[m]
	return ok
}

// ParseModel accepts a model name (case-insensitive), its ordinal
// ("1", "2", "3") or a blank string, which selects DefaultModel.
func ParseModel(s string) (Model, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultModel, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if m := Model(n); m.Valid() {
			return m, nil
		}
		return 0, &InvalidModelError{Name: s}
	}
	for m, name := range modelNames {
		if name == s {
			return m, nil
		}
	}
	return 0, &InvalidModelError{Name: s}
}

// UnmarshalText lets a Model be read from YAML and flag values.
func (m *Model) UnmarshalText(text []byte) error {
	parsed, err := ParseModel(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText writes the model's name.
func (m Model) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &InvalidModelError{Name: m.String()}
	}
	return []byte(m.String()), nil
}

// pixelFunc reduces one pixel's samples to a brightness in [0, 255].
type pixelFunc func(px []uint8) float64

func (m Model) pixelFunc() pixelFunc {
	switch m {
	case Average:
		return averageOf
	case Lightness:
		return lightnessOf
	case Luminosity:
		return luminosityOf
	}
	return nil
}

func averageOf(px []uint8) float64 {
	sum := 0
	for _, v := range px {
		sum += int(v)
	}
	return float64(sum) / float64(len(px))
}

func lightnessOf(px []uint8) float64 {
	lo, hi := px[0], px[0]
	for _, v := range px[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return (float64(lo) + float64(hi)) / 2
}

func luminosityOf(px []uint8) float64 {
	if len(px) < 3 {
		// L and LA: the gray sample stands for R, G and B alike
		g := float64(px[0])
		return LumaR*g + LumaG*g + LumaB*g
	}
	return LumaR*float64(px[0]) + LumaG*float64(px[1]) + LumaB*float64(px[2])
}
