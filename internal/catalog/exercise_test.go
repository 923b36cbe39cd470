package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionsAcceptsStringAndArray(t *testing.T) {
	var records []Exercise
	raw := `[
		{"id":"a","name":"A","instructions":"Stand up."},
		{"id":"b","name":"B","instructions":["Lie down.","Press up."]},
		{"id":"c","name":"C","instructions":null},
		{"id":"d","name":"D"}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	require.Len(t, records, 4)

	assert.Equal(t, "Stand up.", records[0].Instructions.String())
	assert.Equal(t, "Lie down. Press up.", records[1].Instructions.String())
	assert.Empty(t, records[2].Instructions.String())
	assert.Empty(t, records[3].Instructions.String())
}

func TestInstructionsRejectsOtherShapes(t *testing.T) {
	var e Exercise
	err := json.Unmarshal([]byte(`{"id":"a","instructions":42}`), &e)
	assert.Error(t, err)
}

func TestFirstImage(t *testing.T) {
	assert.Equal(t, "x/0.jpg", Exercise{Images: []string{"x/0.jpg", "x/1.jpg"}}.FirstImage())
	assert.Empty(t, Exercise{}.FirstImage())
}
