package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiche_DecodesServerPayload(t *testing.T) {
	raw := `{
		"id": "9b1c",
		"nom": "Caramel",
		"auteur_id": "u-1",
		"numero_arrivee_association": 42,
		"date_creation_fiche": "2025-01-05T08:30:00.5",
		"date_arrivee_association": "2025-01-04T00:00:00Z",
		"photo": null,
		"sexe": "Femelle",
		"poids_actuel": 1800,
		"date_naissance": null,
		"auteur": {"username": "aurelia", "password": "hash", "role": "benevole"}
	}`

	var f Fiche
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	assert.Equal(t, "Caramel", f.Nom)
	assert.Equal(t, "42", f.ArrivalNumber())
	assert.Equal(t, SexFemale, f.Sexe)
	require.NotNil(t, f.PoidsActuel)
	assert.Equal(t, 1800, *f.PoidsActuel)
	assert.Equal(t, "aurelia", f.AuthorName())
	require.NotNil(t, f.DateCreationFiche)
	assert.True(t, f.DateCreationFiche.Equal(time.Date(2025, 1, 5, 8, 30, 0, 500_000_000, time.UTC)))
	require.NotNil(t, f.DateArriveeAssociation)
	assert.True(t, f.DateArriveeAssociation.Equal(time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, f.DateNaissance)
}

func TestFiche_AuthorNameFallback(t *testing.T) {
	assert.Equal(t, "N/A", Fiche{}.AuthorName())
	assert.Equal(t, "N/A", Fiche{Auteur: &Author{}}.AuthorName())
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestTimestamp_MarshalsUTC(t *testing.T) {
	ts := Timestamp{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))}
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01T10:00:00Z"`, string(out))

	out, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestSexLabel(t *testing.T) {
	assert.Equal(t, "Mâle ♂", SexMale.Label())
	assert.Equal(t, "Femelle ♀", SexFemale.Label())
	assert.Equal(t, "?", Sex("").Label())
	assert.Equal(t, "M", Sex("M").Label())
}
