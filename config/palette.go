package config

import (
	"errors"
	"sort"
)

// ErrUnknownColor is returned for a color name outside the palette.
var ErrUnknownColor = errors.New("unknown lipstick color")

// ColorName names a palette entry.
type ColorName string

const (
	SinfulCherry  ColorName = "Sinful Cherry"
	DeliciousPlum ColorName = "Delicious Plum"
)

// Palette maps each lipstick shade to its RGB triple.
var Palette = map[ColorName][3]uint8{
	SinfulCherry:  {170, 0, 52},
	DeliciousPlum: {127, 2, 75},
}

// LookupColor returns the RGB triple for name.
func LookupColor(name ColorName) ([3]uint8, error) {
	rgb, ok := Palette[name]
	if !ok {
		return [3]uint8{}, ErrUnknownColor
	}
	return rgb, nil
}

// ColorNames lists palette entries in a stable order for selection widgets.
func ColorNames() []string {
	out := make([]string, 0, len(Palette))
	for n := range Palette {
		out = append(out, string(n))
	}
	sort.Strings(out)
	return out
}
