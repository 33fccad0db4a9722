package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/docwriter/internal/record"
)

func sampleRecord() record.Record {
	return record.Record{
		"application_name":     "AgroFuture Connect",
		"organization_name":    "AgroFuture",
		"application_category": "Farm Management Platform",
		"application_area":     "Agriculture",
		"application_owner":    "Jane Mwangi",
		"application_tier":     "Tier 1",
		"application_vendor":   "TwigaTech",
	}
}

func TestNeedsSynthesis(t *testing.T) {
	tests := []struct {
		name  string
		bound string
		want  bool
	}{
		{"unresolved placeholder", strings.Repeat("x", 200) + " {owner}", true},
		{"short stub", "Too short.", true},
		{"long resolved prose", strings.Repeat("This section is complete. ", 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsSynthesis(tt.bound))
		})
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	rec := sampleRecord()

	first := Synthesize("Executive Summary", rec)
	second := Synthesize("Executive Summary", rec)

	assert.Equal(t, first, second)
}

func TestSynthesize_KnownSections(t *testing.T) {
	rec := sampleRecord()

	titles := []string{
		"Executive Summary",
		"Technical Architecture",
		"Dependencies",
		"Context Model",
		"Footprint",
		"Capability Automation",
		"Recommendations",
	}

	seen := make(map[string]bool)
	for _, title := range titles {
		content := Synthesize(title, rec)
		assert.NotEmpty(t, content, title)
		assert.False(t, seen[content], "sections must not share prose: %s", title)
		seen[content] = true
	}
}

func TestSynthesize_CaseInsensitiveTitleMatch(t *testing.T) {
	rec := sampleRecord()

	assert.Equal(t, Synthesize("Executive Summary", rec), Synthesize("EXECUTIVE SUMMARY", rec))
}

func TestSynthesize_ReferencesRecordFields(t *testing.T) {
	content := Synthesize("Executive Summary", sampleRecord())

	assert.Contains(t, content, "AgroFuture Connect")
	assert.Contains(t, content, "AgroFuture")
	assert.Contains(t, content, "farm management platform")
	assert.Contains(t, content, "Agriculture")
}

func TestSynthesize_UnknownTitleGeneric(t *testing.T) {
	content := Synthesize("Disaster Recovery", sampleRecord())

	assert.Contains(t, content, "disaster recovery")
	assert.Contains(t, content, "AgroFuture Connect")
}

func TestSynthesize_ToleratesSparseRecord(t *testing.T) {
	rec := record.Record{"application_name": "Bare App"}

	content := Synthesize("Footprint", rec)

	assert.Contains(t, content, "Bare App")
	assert.NotContains(t, content, "{")
}
