package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/garenne/internal/api"
)

func TestFilterFiches(t *testing.T) {
	all := sampleFiches()

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"a1", "b2", "c3"}},
		{"caramel", []string{"a1"}},
		{"CARA", []string{"a1"}},
		{"o", []string{"b2", "c3"}},
		{"42", []string{"a1", "c3"}},
		{"123", []string{"b2"}},
		{"10", []string{"c3"}},
		{"lapin", []string{}},
	}

	for _, tt := range tests {
		got := FilterFiches(all, tt.term)
		ids := make([]string, 0, len(got))
		for _, f := range got {
			ids = append(ids, f.ID)
		}
		assert.Equal(t, tt.want, ids, "term %q", tt.term)
	}
}

func TestFilterFiches_DoesNotMutateInput(t *testing.T) {
	all := sampleFiches()
	before := append([]api.Fiche(nil), all...)

	got := FilterFiches(all, "pompon")
	if len(got) == 1 {
		got[0].Nom = "changed"
	}

	assert.Equal(t, before, all)
}
