package shapebatch

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGBA is a straight (non-premultiplied) color with channels in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// RGBA2 returns a color with explicit alpha.
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts any color.Color, un-premultiplying its channels.
func FromColor(c color.Color) RGBA {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Unpack(PackRGBA(nc.R, nc.G, nc.B, nc.A))
}

// Pack encodes the color as four unsigned bytes in a uint32 with red in
// the low byte. Stored little-endian, the bytes read R, G, B, A, which is
// what a Unorm8x4 vertex attribute expects.
func (c RGBA) Pack() uint32 {
	return PackRGBA(channel8(c.R), channel8(c.G), channel8(c.B), channel8(c.A))
}

// PackRGBA packs byte channels with red in the low byte.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// Unpack decodes a color produced by Pack.
func Unpack(v uint32) RGBA {
	return RGBA{
		R: float64(v&0xFF) / 255,
		G: float64(v>>8&0xFF) / 255,
		B: float64(v>>16&0xFF) / 255,
		A: float64(v>>24&0xFF) / 255,
	}
}

// Hex parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA", with or without a
// leading '#'. Anything else yields opaque black.
func Hex(s string) RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 || len(s) == 4 {
		// Short form: each digit is doubled.
		var long strings.Builder
		for i := 0; i < len(s); i++ {
			long.WriteByte(s[i])
			long.WriteByte(s[i])
		}
		s = long.String()
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black
	}
	return Unpack(PackRGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)))
}

// channel8 rounds a [0, 1] channel to a byte, clamping out-of-range input.
func channel8(x float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(x*255))))
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA2(0, 0, 0, 0)
)
