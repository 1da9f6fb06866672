package core

import "fmt"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack  = RGB{0, 0, 0}
	RGBYellow = RGB{0xFF, 0xFF, 0x00}
	RGBOrange = RGB{0xFF, 0xAA, 0x00}
	RGBRed    = RGB{0xFF, 0x00, 0x00}
)

// Scale multiplies each channel by factor (for fading effects)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Hex returns the #RRGGBB form
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Color is a cell color of the play grid
// Zero value is ColorEmpty: the cell has vanished
type Color uint8

const (
	ColorEmpty Color = iota
	ColorWhite
	ColorOrange
	ColorMagenta
	ColorLightBlue
	ColorYellow
	ColorLime
	ColorPink
	ColorGray
	ColorLightGray
	ColorCyan
	ColorPurple
	ColorBlue
	ColorBrown
	ColorGreen
	ColorRed
	ColorBlack
	colorCount
)

// PaletteSize is the number of non-empty grid colors
const PaletteSize = int(colorCount) - 1

// Palette lists every color a filled cell can take, in dye order
var Palette = [PaletteSize]Color{
	ColorWhite, ColorOrange, ColorMagenta, ColorLightBlue,
	ColorYellow, ColorLime, ColorPink, ColorGray,
	ColorLightGray, ColorCyan, ColorPurple, ColorBlue,
	ColorBrown, ColorGreen, ColorRed, ColorBlack,
}

var colorNames = [colorCount]string{
	"EMPTY",
	"WHITE", "ORANGE", "MAGENTA", "LIGHT_BLUE",
	"YELLOW", "LIME", "PINK", "GRAY",
	"LIGHT_GRAY", "CYAN", "PURPLE", "BLUE",
	"BROWN", "GREEN", "RED", "BLACK",
}

// Dye colors as rendered on wool blocks
var colorRGB = [colorCount]RGB{
	{0x00, 0x00, 0x00},
	{0xF9, 0xFF, 0xFE}, {0xF9, 0x80, 0x1D}, {0xD7, 0x31, 0xC9}, {0x00, 0xC1, 0xFF},
	{0xFE, 0xD8, 0x3D}, {0x43, 0xFF, 0x00}, {0xF3, 0x8B, 0xAA}, {0x47, 0x4F, 0x52},
	{0x9D, 0x9D, 0x97}, {0x16, 0x9C, 0x9C}, {0x89, 0x32, 0xB8}, {0x00, 0x13, 0xFF},
	{0x83, 0x54, 0x32}, {0x5E, 0x7C, 0x16}, {0xB0, 0x2E, 0x26}, {0x1D, 0x1D, 0x21},
}

// String returns the dye identifier (WHITE, LIGHT_BLUE, ...), used as catalog key suffix
func (c Color) String() string {
	if c >= colorCount {
		return "UNKNOWN"
	}
	return colorNames[c]
}

// RGB returns the display color, black for empty or unknown
func (c Color) RGB() RGB {
	if c >= colorCount {
		return RGBBlack
	}
	return colorRGB[c]
}

// Valid reports whether c is a palette color (not empty)
func (c Color) Valid() bool {
	return c > ColorEmpty && c < colorCount
}

// ParseColor resolves a dye identifier, case-sensitive
func ParseColor(name string) (Color, bool) {
	for i := 1; i < int(colorCount); i++ {
		if colorNames[i] == name {
			return Color(i), true
		}
	}
	return ColorEmpty, false
}

// FireworkColors is the celebration color set
var FireworkColors = []RGB{
	{0xFF, 0x00, 0x00}, {0x00, 0x00, 0xFF}, {0x00, 0x80, 0x00}, {0xFF, 0xFF, 0x00},
	{0x80, 0x00, 0x80}, {0xFF, 0xA5, 0x00}, {0xFF, 0xA5, 0x00}, {0x00, 0xFF, 0x00},
}
