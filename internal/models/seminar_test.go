package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayDate_RoundTrip(t *testing.T) {
	assert.Equal(t, "10.03.2025", DisplayDate("2025-03-10"))
	assert.Equal(t, "2025-03-10", InputDate("10.03.2025"))
	assert.Equal(t, "2025-03-10", InputDate(DisplayDate("2025-03-10")))
}

func TestInputDate_WithoutDotUnchanged(t *testing.T) {
	assert.Equal(t, "2025-03-10", InputDate("2025-03-10"))
	assert.Equal(t, "", InputDate(""))
	assert.Equal(t, "", DisplayDate(""))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, ID(1), NextID(nil))
	assert.Equal(t, ID(8), NextID([]Seminar{{ID: 3}, {ID: 7}, {ID: 5}}))
}

func TestID_UnmarshalNumberAndString(t *testing.T) {
	var list []Seminar
	raw := `[{"id":4,"title":"a"},{"id":"12","title":"b"},{"title":"c"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	require.Len(t, list, 3)
	assert.Equal(t, ID(4), list[0].ID)
	assert.Equal(t, ID(12), list[1].ID)
	assert.Equal(t, NoID, list[2].ID)
}

func TestID_UnmarshalRejectsGarbage(t *testing.T) {
	var s Seminar
	assert.Error(t, json.Unmarshal([]byte(`{"id":"abc"}`), &s))
}

func TestSeminar_MarshalOmitsMissingID(t *testing.T) {
	b, err := json.Marshal(Seminar{Title: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"id"`)

	b, err = json.Marshal(Seminar{ID: 9, Title: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":9`)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 15 ")
	require.NoError(t, err)
	assert.Equal(t, ID(15), id)

	_, err = ParseID("default-id")
	assert.Error(t, err)
}
