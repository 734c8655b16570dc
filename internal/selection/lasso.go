package selection

import "github.com/example/stageplot/internal/stage"

// Candidates returns the ids of items whose rectangle overlaps the lasso
// spanned by origin and current, in item order.
func Candidates(items []stage.Item, origin, current stage.Point) []string {
	lasso := stage.RectFromPoints(origin, current)
	var out []string
	for _, it := range items {
		if it.Rect().Overlaps(lasso) {
			out = append(out, it.ID)
		}
	}
	return out
}

// PastDeadZone reports whether the pointer has left the dead zone around the
// press origin.
func PastDeadZone(origin, current stage.Point, deadZone float64) bool {
	return origin.Dist(current) > deadZone
}

// Union returns the ids of a and b without duplicates, a first.
func Union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
