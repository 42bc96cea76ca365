package svgutil

import (
	"strconv"
	"strings"
)

// attributeSize extracts numeric width/height attributes from the opening
// svg tag. Both must be present and positive for ok to be true.
func attributeSize(svg string) (w, h float64, ok bool) {
	tag := openingTag(svg)
	w, wok := attributeValue(tag, "width")
	h, hok := attributeValue(tag, "height")
	if !wok || !hok || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// openingTag returns the markup of the root <svg ...> element only, so
// width/height on child shapes are never mistaken for document dimensions.
func openingTag(svg string) string {
	start := strings.Index(svg, "<svg")
	if start == -1 {
		return ""
	}
	rest := svg[start:]
	end := strings.Index(rest, ">")
	if end == -1 {
		return rest
	}
	return rest[:end+1]
}

// attributeValue finds attr="value" in the markup and parses the numeric
// value, stripping a trailing length unit if one is present. Percentage
// values are not usable as absolute dimensions and are rejected. The leading
// space keeps width from matching inside stroke-width.
func attributeValue(svg, attr string) (float64, bool) {
	pattern := " " + attr + `="`
	start := strings.Index(svg, pattern)
	if start == -1 {
		return 0, false
	}
	start += len(pattern)
	end := strings.Index(svg[start:], `"`)
	if end == -1 {
		return 0, false
	}

	val := svg[start : start+end]
	if strings.HasSuffix(val, "%") {
		return 0, false
	}
	for _, unit := range []string{"px", "mm", "cm", "pt", "pc", "in"} {
		val = strings.TrimSuffix(val, unit)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
