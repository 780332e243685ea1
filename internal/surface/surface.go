// Package surface maps the simulator's airport surface classification codes
// to the colours the map renders them with.
package surface

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// Transparent is the fill for surfaces that must not be drawn.
	Transparent = "transparent"
	// Unknown is the fill for any code missing from the table.
	Unknown = "#3a3a3a"

	outlineLightenPercent = 15
)

// fills is indexed by apt.dat surface code.
var fills = map[int]string{
	// standard
	1:  "#4a4a4a", // asphalt
	2:  "#8c8c8c", // concrete
	3:  "#4f7a3a", // turf or grass
	4:  "#7a5c3a", // dirt
	5:  "#8a8378", // gravel
	12: "#c2b280", // dry lakebed
	13: "#2f5f8a", // water
	14: "#e8eef2", // snow or ice
	15: Transparent,

	// extended asphalt, light to dark
	20: "#5a5a5a",
	21: "#575757",
	22: "#545454",
	23: "#515151",
	24: "#4e4e4e",
	25: "#4b4b4b",
	26: "#484848",
	27: "#454545",
	28: "#424242",
	29: "#3f3f3f",
	30: "#3c3c3c",
	31: "#393939",
	32: "#363636",
	33: "#333333",
	34: "#303030",
	35: "#2d2d2d",
	36: "#2a2a2a",
	37: "#272727",
	38: "#242424",

	// concrete markings
	50: "#a0a0a0",
	51: "#9a9a9a",
	52: "#949494",
	53: "#8e8e8e",
	54: "#888888",
	55: "#828282",
	56: "#7c7c7c",
	57: "#767676",
}

// FillColor returns the fill colour for a surface code, or Unknown.
func FillColor(code int) string {
	if c, ok := fills[code]; ok {
		return c
	}
	return Unknown
}

// OutlineColor returns the outline drawn around a surface: the fill
// lightened by 15%, or Transparent for transparent surfaces.
func OutlineColor(code int) string {
	fill := FillColor(code)
	if fill == Transparent {
		return Transparent
	}
	return Lighten(fill, outlineLightenPercent)
}

// Known reports whether code has an entry in the table.
func Known(code int) bool {
	_, ok := fills[code]
	return ok
}

// Codes returns every code in the table in ascending order.
func Codes() []int {
	codes := make([]int, 0, len(fills))
	for c := range fills {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

// Lighten adds round(2.55*percent) to each RGB channel of a "#rrggbb"
// colour, saturating at 0 and 255. Anything that is not a six digit hex
// colour is returned unchanged.
func Lighten(color string, percent int) string {
	hex := strings.TrimPrefix(color, "#")
	if len(hex) != 6 {
		return color
	}
	num, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color
	}

	// Halves round toward +Inf, not away from zero.
	amt := int(math.Floor(2.55*float64(percent) + 0.5))

	r := clampChannel(int(num>>16) + amt)
	g := clampChannel(int(num>>8&0xff) + amt)
	b := clampChannel(int(num&0xff) + amt)

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
