package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseSummary(t *testing.T) {
	n := 3
	c := &Case{
		CaseID:    "case_1",
		UserID:    "u1",
		Title:     "FIR filed",
		Events:    []Event{{Title: "FIR filed", Date: "2023-02-10"}, {Title: "Hearing", Date: "2023-03-01"}},
		FileCount: &n,
	}

	s := c.Summary("Unknown")
	assert.Equal(t, "case_1", s.CaseID)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, 2, s.EventCount)
	assert.Equal(t, "2023-02-10", s.FirstEventDate)
	assert.Equal(t, &n, s.FileCount)
}

func TestCaseSummaryFallbackDate(t *testing.T) {
	assert.Equal(t, "Unknown", (&Case{}).Summary("Unknown").FirstEventDate)
	assert.Equal(t, "Unknown", (&Case{Events: []Event{{Title: "x"}}}).Summary("Unknown").FirstEventDate)
}
