package api

import (
	"fmt"
	"strconv"
	"time"
)

// Sex is the enumerated sex of a rabbit, in the form the shelter API stores.
type Sex string

const (
	SexMale   Sex = "Mâle"
	SexFemale Sex = "Femelle"
)

// Label returns the display label.
func (s Sex) Label() string {
	switch s {
	case SexMale:
		return "Mâle ♂"
	case SexFemale:
		return "Femelle ♀"
	default:
		if s == "" {
			return "?"
		}
		return string(s)
	}
}

// AuthToken mirrors the /auth/token response.
type AuthToken struct {
	AccessToken string `json:"access_token"`
}

// Credentials is the /auth/token request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User mirrors the user output schema.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
}

// UserCreate is the payload for POST /users/.
type UserCreate struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Author is the embedded author of a fiche or post. Only the display name is
// guaranteed.
type Author struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
}

// Fiche is an intake record as returned by /ficheslapin/.
type Fiche struct {
	ID                     string     `json:"id"`
	Nom                    string     `json:"nom"`
	NumeroArrivee          int        `json:"numero_arrivee_association"`
	Sexe                   Sex        `json:"sexe,omitempty"`
	PoidsActuel            *int       `json:"poids_actuel,omitempty"`
	DateArriveeAssociation *Timestamp `json:"date_arrivee_association,omitempty"`
	DateCreationFiche      *Timestamp `json:"date_creation_fiche,omitempty"`
	Photo                  string     `json:"photo,omitempty"`
	AuteurID               string     `json:"auteur_id,omitempty"`
	Auteur                 *Author    `json:"auteur,omitempty"`

	NumeroIdentification string     `json:"numero_identification,omitempty"`
	DateNaissance        *Timestamp `json:"date_naissance,omitempty"`
	PoidsIdeal           *int       `json:"poids_ideal,omitempty"`
	NomVeterinaire       string     `json:"nom_veterinaire,omitempty"`
	ProblemesSante       string     `json:"problemes_sante_connus,omitempty"`
	Caractere            string     `json:"caractere,omitempty"`
}

// ArrivalNumber returns the arrival number as the decimal string used by
// search.
func (f Fiche) ArrivalNumber() string {
	return strconv.Itoa(f.NumeroArrivee)
}

// AuthorName returns the author's display name, or "N/A".
func (f Fiche) AuthorName() string {
	if f.Auteur == nil || f.Auteur.Username == "" {
		return "N/A"
	}
	return f.Auteur.Username
}

// FicheCreate is the payload for POST /ficheslapin/. Timestamps are assigned
// by the client at submission time.
type FicheCreate struct {
	Nom                    string    `json:"nom"`
	NumeroArrivee          int       `json:"numero_arrivee_association"`
	Sexe                   Sex       `json:"sexe"`
	PoidsActuel            *int      `json:"poids_actuel"`
	DateCreationFiche      time.Time `json:"date_creation_fiche"`
	DateArriveeAssociation time.Time `json:"date_arrivee_association"`
	AuteurID               string    `json:"auteur_id"`
}

// FicheUpdate is a partial update keyed by API field name.
type FicheUpdate map[string]any

// Post mirrors the post output schema.
type Post struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Author  *Author `json:"author,omitempty"`
}

// PostCreate is the payload for POST /posts/ and the per-fiche variant.
type PostCreate struct {
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	AuthorID string `json:"author_id"`
}

// naiveLayout matches the timezone-less datetimes the API serializes.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp accepts RFC 3339 as well as naive ISO datetimes, which are read
// as UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler. null and "" leave the zero time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	value, err := strconv.Unquote(raw)
	if err != nil {
		return fmt.Errorf("timestamp %s: %w", raw, err)
	}
	parsed, err := parseTime(value)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339Nano))), nil
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range []string{naiveLayout, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
