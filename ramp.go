package img2ascii

import (
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// CharacterRamp is a sequence of glyphs ordered by visual density: index 0
// is the lightest glyph, the last index the densest.
type CharacterRamp []rune

// DefaultRampString orders printable ASCII from sparse to dense.
const DefaultRampString = "`^\",:;Il!i~+_-?][}{1)(|\\/tjfrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$"

// DefaultRamp is the ramp used when none is configured.
var DefaultRamp = NewRamp(DefaultRampString)

// NewRamp builds a ramp from the runes of s, lightest first.
func NewRamp(s string) CharacterRamp {
	return CharacterRamp([]rune(s))
}

// Validate checks that the ramp holds at least one printable glyph of
// uniform display width.
func (r CharacterRamp) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("%w: character ramp is empty", ErrInvalidOption)
	}
	w := runewidth.RuneWidth(r[0])
	for _, c := range r {
		if c == utf8.RuneError || c == '\n' || c == '\r' {
			return fmt.Errorf("%w: ramp contains %q", ErrInvalidOption, c)
		}
		if rw := runewidth.RuneWidth(c); rw == 0 || rw != w {
			return fmt.Errorf("%w: ramp glyph %q has display width %d, want %d",
				ErrInvalidOption, c, rw, w)
		}
	}
	return nil
}

// Lightest returns the first glyph of the ramp.
func (r CharacterRamp) Lightest() rune { return r[0] }

// Densest returns the last glyph of the ramp.
func (r CharacterRamp) Densest() rune { return r[len(r)-1] }

// GlyphWidth returns the terminal display width of one ramp glyph.
func (r CharacterRamp) GlyphWidth() int {
	if len(r) == 0 {
		return 0
	}
	return runewidth.RuneWidth(r[0])
}

func (r CharacterRamp) String() string { return string(r) }
