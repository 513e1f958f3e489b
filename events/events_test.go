package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCaseCreated(t *testing.T) {
	n := 2
	evt := NewCaseCreated("u1", "case_1", "FIR filed", 3, &n)

	assert.Equal(t, CaseCreated, evt.Type)
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, "api", evt.Source)
	assert.False(t, evt.Timestamp.IsZero())

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "case.created", decoded["type"])
	assert.Equal(t, "case_1", decoded["case_id"])
	assert.Equal(t, float64(2), decoded["file_count"])
}

func TestNewCaseCreatedOmitsFileCountForText(t *testing.T) {
	data, err := json.Marshal(NewCaseCreated("u1", "case_1", "t", 1, nil))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "file_count")
}

func TestNewCaseDeleted(t *testing.T) {
	a := NewCaseDeleted("u1", "case_1")
	b := NewCaseDeleted("u1", "case_1")

	assert.Equal(t, CaseDeleted, a.Type)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestEventIDMatchesPayloadID(t *testing.T) {
	var evt Identified = NewCaseDeleted("u1", "case_1")
	assert.Equal(t, evt.(CaseDeletedEvent).ID, evt.EventID())
}
