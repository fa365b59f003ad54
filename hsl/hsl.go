// Package hsl converts RGB pixel samples into the hue/saturation/
// lightness triple that the rest of the interpreter classifies on.
// https://en.wikipedia.org/wiki/HSL_and_HSV
package hsl

import "math"

// HSL is a pixel's hue (degrees, [0,360)), saturation and lightness
// (percent, [0,100]). Only Hue is semantically significant to the
// interpreter; Saturation and Lightness exist because the out-of-scope
// editor reports them.
type HSL struct {
	Hue        int
	Saturation int
	Lightness  int
}

// FromRGB converts an 8-bit RGB triple to HSL, rounding hue to the
// nearest integer degree. When r, g and b are all equal (achromatic),
// hue is defined as 0.
func FromRGB(r, g, b uint8) HSL {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	delta := max - min

	lightness := (max + min) / 2

	if delta == 0 {
		return HSL{Hue: 0, Saturation: 0, Lightness: round(lightness * 100)}
	}

	var sat float64
	if lightness < 0.5 {
		sat = delta / (max + min)
	} else {
		sat = delta / (2 - max - min)
	}

	var hue float64
	switch max {
	case rf:
		hue = math.Mod((gf-bf)/delta, 6)
	case gf:
		hue = (bf-rf)/delta + 2
	default: // bf
		hue = (rf-gf)/delta + 4
	}
	hue *= 60
	if hue < 0 {
		hue += 360
	}

	h := round(hue) % 360
	if h < 0 {
		h += 360
	}

	return HSL{Hue: h, Saturation: round(sat * 100), Lightness: round(lightness * 100)}
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}
