package neopixel

import "fmt"

// Color is the logical color of one LED. A W of -1 marks a color without a
// white component; use RGB and RGBW to construct the two variants.
type Color struct {
	R int
	G int
	B int
	W int
}

// RGB returns a three-channel color.
func RGB(r, g, b int) Color {
	return Color{r, g, b, -1}
}

// RGBW returns a four-channel color.
func RGBW(r, g, b, w int) Color {
	return Color{r, g, b, w}
}

// HasWhite reports whether the color carries a white component.
func (c Color) HasWhite() bool {
	return c.W >= 0
}

func (c Color) String() string {
	if c.HasWhite() {
		return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.W)
	}
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// ColorHSV converts a hue/saturation/value triple to an RGB color. hue wraps
// modulo 65536 (negative values wrap upwards); sat and val are expected in
// [0,255]. The integer ramp matches the Adafruit NeoPixel one bit for bit,
// and the result never carries a white component.
func ColorHSV(hue, sat, val int) Color {
	hue %= 65536
	if hue < 0 {
		hue += 65536
	}
	hue = (hue*1530 + 32768) / 65536

	var r, g, b int
	switch {
	case hue < 510: // red to green
		b = 0
		if hue < 255 {
			r = 255
			g = hue
		} else {
			r = 510 - hue
			g = 255
		}
	case hue < 1020: // green to blue
		r = 0
		if hue < 765 {
			g = 255
			b = hue - 510
		} else {
			g = 1020 - hue
			b = 255
		}
	case hue < 1530: // blue to red
		g = 0
		if hue < 1275 {
			r = hue - 1020
			b = 255
		} else {
			r = 255
			b = 1530 - hue
		}
	default:
		r = 255
		g = 0
		b = 0
	}

	v1 := 1 + val
	s1 := 1 + sat
	s2 := 255 - sat

	r = ((((r * s1) >> 8) + s2) * v1) >> 8
	g = ((((g * s1) >> 8) + s2) * v1) >> 8
	b = ((((b * s1) >> 8) + s2) * v1) >> 8
	return RGB(r, g, b)
}
