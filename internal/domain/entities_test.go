package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_ResolvesFlatAndWrappedShapes(t *testing.T) {
	var flat, wrapped Entry
	require.NoError(t, json.Unmarshal([]byte(`{"id":"7","genres":["drama"]}`), &flat))
	require.NoError(t, json.Unmarshal([]byte(`{"show":{"id":"9","genres":["comedy"]}}`), &wrapped))

	assert.False(t, flat.IsWrapped())
	assert.True(t, wrapped.IsWrapped())

	assert.Equal(t, "7", flat.ID())
	assert.Equal(t, "9", wrapped.ID())
	assert.Equal(t, []string{"drama"}, flat.Genres())
	assert.Equal(t, []string{"comedy"}, wrapped.Genres())
}

func TestEntry_WrappedTakesPrecedenceOverOuterFields(t *testing.T) {
	payload := `{
		"id": 1001,
		"name": "Pilot",
		"score": 0.9,
		"show": {"id": 82, "name": "Game of Thrones", "genres": ["Drama", "Fantasy"],
		         "rating": {"average": 8.9}, "image": {"medium": "m.jpg", "original": "o.jpg"}}
	}`
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(payload), &e))

	assert.Equal(t, "82", e.ID())
	assert.Equal(t, "Game of Thrones", e.Name())
	assert.Equal(t, RatingOf(8.9), e.Rating())
	require.NotNil(t, e.Image())
	assert.Equal(t, "m.jpg", e.Image().Medium)
	assert.InDelta(t, 0.9, e.Score(), 1e-9)
	assert.True(t, e.HasGenre("Fantasy"))
	assert.False(t, e.HasGenre("fantasy"))
}

func TestEntry_NullShowIsFlat(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"show":null,"genres":["Horror"]}`), &e))

	assert.False(t, e.IsWrapped())
	assert.Equal(t, "3", e.ID())
}

func TestEntry_MarshalKeepsShape(t *testing.T) {
	data, err := json.Marshal(NewWrappedEntry(Show{ID: "9", Genres: []string{"comedy"}}, 1.5))
	require.NoError(t, err)

	var back Entry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.IsWrapped())
	assert.Equal(t, "9", back.ID())
	assert.InDelta(t, 1.5, back.Score(), 1e-9)

	data, err = json.Marshal(NewFlatEntry(Show{ID: "7", Rating: RatingOf(7.5)}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"genres":null,"rating":{"average":7.5}}`, string(data))
}

func TestID_MarshalOnlyCanonicalNumbersBare(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{"42", `42`},
		{"-3", `-3`},
		{"007", `"007"`},
		{"+5", `"+5"`},
		{"-0", `"-0"`},
		{"tt0903747", `"tt0903747"`},
		{"", `""`},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			data, err := json.Marshal(NewFlatEntry(Show{ID: tt.id}))
			require.NoError(t, err)
			require.True(t, json.Valid(data), string(data))

			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &raw))
			assert.Equal(t, tt.want, string(raw["id"]))

			var back Entry
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, string(tt.id), back.ID())
		})
	}
}

func TestEntry_WrappedFallsBackToOuterFields(t *testing.T) {
	payload := `{"id":1,"name":"Outer","genres":["Drama"],"rating":{"average":4.2},
		"image":{"medium":"outer.jpg"},"show":{"id":9,"rating":{"average":null}}}`
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(payload), &e))

	require.True(t, e.IsWrapped())
	assert.Equal(t, "9", e.ID())
	assert.Equal(t, RatingOf(4.2), e.Rating())
	assert.Equal(t, "Outer", e.Name())
	assert.Equal(t, []string{"Drama"}, e.Genres())
	require.NotNil(t, e.Image())
	assert.Equal(t, "outer.jpg", e.Image().Medium)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	var back Entry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.IsWrapped())
	assert.Equal(t, "9", back.ID())
	assert.Equal(t, RatingOf(4.2), back.Rating())
}

func TestEntry_WrappedWithoutIDUsesOuterID(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"show":{"name":"Untitled"}}`), &e))

	assert.Equal(t, "5", e.ID())
	assert.Equal(t, "Untitled", e.Name())
	assert.False(t, e.Rating().Valid)
}

func TestRating_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Rating
	}{
		{"number", `{"rating":{"average":8.1}}`, RatingOf(8.1)},
		{"zero is present", `{"rating":{"average":0}}`, RatingOf(0)},
		{"json null", `{"rating":{"average":null}}`, Rating{}},
		{"string null", `{"rating":{"average":"null"}}`, Rating{}},
		{"numeric string", `{"rating":{"average":"6.5"}}`, RatingOf(6.5)},
		{"missing average", `{"rating":{}}`, Rating{}},
		{"null rating", `{"rating":null}`, Rating{}},
		{"missing rating", `{}`, Rating{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Show
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &s))
			assert.Equal(t, tt.want, s.Rating)
		})
	}
}

func TestRating_RejectsGarbage(t *testing.T) {
	var s Show
	err := json.Unmarshal([]byte(`{"rating":{"average":"high"}}`), &s)
	assert.Error(t, err)
}

func TestCastSummary(t *testing.T) {
	cast := []CastMember{
		{Person: Person{Name: "A"}},
		{Person: Person{Name: "B"}},
	}
	assert.Equal(t, "A, B", CastSummary(cast))
	assert.Equal(t, "A", CastSummary(cast[:1]))
	assert.Equal(t, "", CastSummary(nil))
}

func TestDetail_IsEmpty(t *testing.T) {
	assert.True(t, Detail{}.IsEmpty())
	assert.False(t, Detail{Info: NewFlatEntry(Show{ID: "1"})}.IsEmpty())
	assert.False(t, Detail{SeasonCount: 2}.IsEmpty())
}

func TestQuery_Validate(t *testing.T) {
	assert.NoError(t, Query{Text: "office"}.Validate())
	assert.ErrorIs(t, Query{Text: "  "}.Validate(), ErrEmptyQuery)
}

func TestTransportError_Unwraps(t *testing.T) {
	err := error(&TransportError{Op: "fetchShows", Err: ErrNotFound})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "fetchShows: not found", err.Error())
}
