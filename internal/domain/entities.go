package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ID is a catalog identifier. The remote API sends numeric ids, fixtures and
// callers use strings; both decode to the same value.
type ID string

// UnmarshalJSON accepts a JSON number or string
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so payloads round-trip with the API
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Image holds poster URLs
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// Rating is an average audience rating. The catalog reports a missing
// rating either as JSON null or as the literal string "null"; both leave
// Valid false, and so does a rating that is absent altogether.
type Rating struct {
	Value float64
	Valid bool
}

// RatingOf returns a present rating
func RatingOf(v float64) Rating {
	return Rating{Value: v, Valid: true}
}

type ratingJSON struct {
	Average json.RawMessage `json:"average"`
}

// UnmarshalJSON decodes {"average": 8.1 | null | "null"}
func (r *Rating) UnmarshalJSON(data []byte) error {
	*r = Rating{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw ratingJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	avg := bytes.TrimSpace(raw.Average)
	if len(avg) == 0 || bytes.Equal(avg, []byte("null")) {
		return nil
	}
	if avg[0] == '"' {
		var s string
		if err := json.Unmarshal(avg, &s); err != nil {
			return err
		}
		if s == "" || s == "null" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid rating %q: %w", s, err)
		}
		*r = RatingOf(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(avg, &v); err != nil {
		return err
	}
	*r = RatingOf(v)
	return nil
}

// MarshalJSON writes the catalog's {"average": ...} shape
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte(`{"average":null}`), nil
	}
	return json.Marshal(map[string]float64{"average": r.Value})
}

// String returns the rating for display ("-" when absent)
func (r Rating) String() string {
	if !r.Valid {
		return "-"
	}
	return strconv.FormatFloat(r.Value, 'f', 1, 64)
}

// Network is the broadcaster or streaming service of a show
type Network struct {
	Name    string   `json:"name"`
	Country *Country `json:"country,omitempty"`
}

// Country of a network
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Show is a single catalog listing
type Show struct {
	ID        ID       `json:"id"`
	Name      string   `json:"name,omitempty"`
	Type      string   `json:"type,omitempty"`
	Language  string   `json:"language,omitempty"`
	Status    string   `json:"status,omitempty"`
	Premiered string   `json:"premiered,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	URL       string   `json:"url,omitempty"`
	Genres    []string `json:"genres"`
	Rating    Rating   `json:"rating"`
	Image     *Image   `json:"image,omitempty"`
	Network   *Network `json:"network,omitempty"`
}

// NetworkName returns the network name or "" if unknown
func (s Show) NetworkName() string {
	if s.Network == nil {
		return ""
	}
	return s.Network.Name
}

// Year returns the premiere year or "" if unknown
func (s Show) Year() string {
	if len(s.Premiered) >= 4 {
		return s.Premiered[:4]
	}
	return ""
}

// Entry is one listing as returned by the catalog. Listing endpoints send the
// show itself (flat); search and schedule endpoints wrap it under a "show" key
// (wrapped). Accessors read the wrapped show first and fall back to the flat
// record field by field, so callers never inspect the shape themselves.
type Entry struct {
	flat    Show
	wrapped *Show
	score   float64
}

// NewFlatEntry builds an entry as returned by the listing endpoint
func NewFlatEntry(show Show) Entry {
	return Entry{flat: show}
}

// NewWrappedEntry builds an entry as returned by the search endpoint
func NewWrappedEntry(show Show, score float64) Entry {
	return Entry{wrapped: &show, score: score}
}

// IsWrapped reports whether the entry arrived in the nested {"show": ...} form
func (e Entry) IsWrapped() bool { return e.wrapped != nil }

// Show returns the resolved show record. For wrapped entries the id, name,
// image, genres and rating come from the nested show when present and from
// the outer object otherwise.
func (e Entry) Show() Show {
	if e.wrapped == nil {
		return e.flat
	}
	s := *e.wrapped
	if s.ID == "" {
		s.ID = e.flat.ID
	}
	if s.Name == "" {
		s.Name = e.flat.Name
	}
	if s.Image == nil {
		s.Image = e.flat.Image
	}
	if s.Genres == nil {
		s.Genres = e.flat.Genres
	}
	if !s.Rating.Valid {
		s.Rating = e.flat.Rating
	}
	return s
}

func (e Entry) ID() string       { return string(e.Show().ID) }
func (e Entry) Name() string     { return e.Show().Name }
func (e Entry) Image() *Image    { return e.Show().Image }
func (e Entry) Genres() []string { return e.Show().Genres }
func (e Entry) Rating() Rating   { return e.Show().Rating }

// Score is the search relevance score (0 for flat entries)
func (e Entry) Score() float64 { return e.score }

// HasGenre reports whether the resolved genre set contains genre (exact match)
func (e Entry) HasGenre(genre string) bool {
	return slices.Contains(e.Genres(), genre)
}

// UnmarshalJSON decides the shape from the presence of a "show" object
func (e *Entry) UnmarshalJSON(data []byte) error {
	var shape struct {
		Show  json.RawMessage `json:"show"`
		Score float64         `json:"score"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return err
	}

	var flat Show
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*e = Entry{flat: flat, score: shape.Score}

	nested := bytes.TrimSpace(shape.Show)
	if len(nested) > 0 && nested[0] == '{' {
		var show Show
		if err := json.Unmarshal(nested, &show); err != nil {
			return fmt.Errorf("invalid nested show: %w", err)
		}
		e.wrapped = &show
	}
	return nil
}

// MarshalJSON writes the entry back in the shape it arrived in. Outer fields
// of a wrapped entry are kept when they carry anything.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.wrapped == nil {
		return json.Marshal(e.flat)
	}
	if e.flat.isBlank() {
		return json.Marshal(struct {
			Score float64 `json:"score"`
			Show  *Show   `json:"show"`
		}{e.score, e.wrapped})
	}
	return json.Marshal(struct {
		Show
		Score  float64 `json:"score"`
		Nested *Show   `json:"show"`
	}{e.flat, e.score, e.wrapped})
}

func (s Show) isBlank() bool {
	return s.ID == "" && s.Name == "" && s.Image == nil && s.Genres == nil && !s.Rating.Valid
}

// Person is a cast member's person record
type Person struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Character is the role played by a cast member
type Character struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// CastMember is one element of a show's cast list
type CastMember struct {
	Person    Person    `json:"person"`
	Character Character `json:"character"`
}

// Season is a season record. Only the count is used by the store.
type Season struct {
	ID           ID     `json:"id"`
	Number       int    `json:"number"`
	Name         string `json:"name"`
	EpisodeOrder int    `json:"episodeOrder"`
}

// Episode is an episode record. Only the count is used by the store.
type Episode struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}

// Detail is the aggregated detail view for one selected entry
type Detail struct {
	Info         Entry
	CastSummary  string // Person names joined with ", "
	SeasonCount  int
	EpisodeCount int
}

// IsEmpty reports whether no detail has been published
func (d Detail) IsEmpty() bool {
	return d.Info.ID() == "" && d.CastSummary == "" && d.SeasonCount == 0 && d.EpisodeCount == 0
}

// CastSummary joins person names in the order given
func CastSummary(cast []CastMember) string {
	names := make([]string, 0, len(cast))
	for _, c := range cast {
		names = append(names, c.Person.Name)
	}
	return strings.Join(names, ", ")
}

// Query is the search criteria passed to the catalog
type Query struct {
	Text string
}

// Validate rejects blank queries
func (q Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// FetchMode selects between restarting a listing and continuing it
type FetchMode int

const (
	ModeInit FetchMode = iota // reset and fetch the first page
	ModeMore                  // fetch the next page
)

// String returns "INIT" or "MORE"
func (m FetchMode) String() string {
	switch m {
	case ModeInit:
		return "INIT"
	case ModeMore:
		return "MORE"
	default:
		return "UNKNOWN"
	}
}
