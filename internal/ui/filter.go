package ui

import (
	"strings"

	"github.com/five82/garenne/internal/api"
)

// FilterFiches returns the records whose name contains term case-insensitively
// or whose arrival number contains it. The input slice is never modified; an
// empty term returns a copy of the whole list.
func FilterFiches(fiches []api.Fiche, term string) []api.Fiche {
	out := make([]api.Fiche, 0, len(fiches))
	needle := strings.ToLower(term)
	for _, f := range fiches {
		if strings.Contains(strings.ToLower(f.Nom), needle) ||
			strings.Contains(f.ArrivalNumber(), term) {
			out = append(out, f)
		}
	}
	return out
}
