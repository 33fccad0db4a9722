package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRows(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		table bool
		rows  int
	}{
		{
			name:  "structured key value block",
			in:    "TCO: 40000\nVendor: TwigaTech\nLicenses: 120 of 150",
			table: true,
			rows:  3,
		},
		{
			name:  "single pair is prose",
			in:    "Vendor: TwigaTech",
			table: false,
		},
		{
			name:  "prose with incidental colon",
			in:    "The platform serves two goals: telemetry and billing.\nIt runs in three regions.\nOperations are handled in Nairobi.",
			table: false,
		},
		{
			name:  "majority rule keeps mixed content prose",
			in:    "A: 1\nB: 2\nlong prose line without any pair\nanother prose line\na third prose line",
			table: false,
		},
		{
			name:  "overlong value is not a row",
			in:    "A: 1\nB: " + strings.Repeat("x", 120),
			table: false,
		},
		{
			name:  "urls are not rows",
			in:    "Endpoint: https://example.com/path\nBackup: https://backup.example.com",
			table: false,
		},
		{
			name:  "blank lines ignored",
			in:    "A: 1\n\nB: 2\n\n",
			table: true,
			rows:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, ok := tableRows(tt.in)
			assert.Equal(t, tt.table, ok)
			if tt.table {
				require.Len(t, rows, tt.rows)
			}
		})
	}
}

func TestTableRowsTrimsCells(t *testing.T) {
	rows, ok := tableRows("  Vendor :  TwigaTech  \n  Tier : Tier 1 ")
	require.True(t, ok)
	assert.Equal(t, [2]string{"Vendor", "TwigaTech"}, rows[0])
	assert.Equal(t, [2]string{"Tier", "Tier 1"}, rows[1])
}

func TestCleanContent(t *testing.T) {
	assert.Equal(t, "bold text here", cleanContent("<p>**bold** text here</p>"))
	assert.Equal(t, "plain", cleanContent("plain"))
	assert.Equal(t, "a b", cleanContent("<div class=\"x\">a</div> b"))
}

func TestFormatStakeholders(t *testing.T) {
	assert.Equal(t, "", FormatStakeholders(nil))
	assert.Equal(t, "CIO", FormatStakeholders([]string{"CIO"}))
	assert.Equal(t, "CIO and CTO", FormatStakeholders([]string{"CIO", "CTO"}))
	assert.Equal(t, "CIO, CTO, and Security", FormatStakeholders([]string{"CIO", "CTO", "Security"}))
}

func TestFormatStakeholdersDoesNotMutateInput(t *testing.T) {
	in := []string{"A", "B", "C"}
	_ = FormatStakeholders(in)
	assert.Equal(t, []string{"A", "B", "C"}, in)
}

func TestFitBox(t *testing.T) {
	w, h := fitBox(100, 40, 200, 80)
	assert.Equal(t, 100, w)
	assert.Equal(t, 40, h)

	w, h = fitBox(400, 160, 200, 80)
	assert.Equal(t, 200, w)
	assert.Equal(t, 80, h)

	w, h = fitBox(400, 400, 200, 80)
	assert.Equal(t, 80, w)
	assert.Equal(t, 80, h)
}
