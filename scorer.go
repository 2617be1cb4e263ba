package pagemeta

import (
	"strconv"
	"strings"
)

// anySizeScore ranks sizes="any" below every concrete size (the smallest,
// 1x1, scores 1) but above an icon with no size information (0).
const anySizeScore = 0.5

// IconSizeScorer ranks icon candidates by the largest area declared in the
// element's sizes attribute ("16x16 32x32", "any"). Missing or unparseable
// sizes score zero.
func IconSizeScorer(el Element, _ any) float64 {
	sizes, ok := el.Attr("sizes")
	if !ok {
		return 0
	}

	var best float64
	for _, token := range strings.Fields(sizes) {
		if strings.EqualFold(token, "any") {
			best = max(best, anySizeScore)
			continue
		}
		if area, ok := parseArea(token); ok {
			best = max(best, area)
		}
	}
	return best
}

// parseArea parses a WIDTHxHEIGHT token and returns width*height.
func parseArea(token string) (float64, bool) {
	w, h, ok := strings.Cut(strings.ToLower(token), "x")
	if !ok {
		return 0, false
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, false
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, false
	}
	return float64(width) * float64(height), true
}
