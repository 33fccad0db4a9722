package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFields_SingleDependency(t *testing.T) {
	rec := Record{
		"application_name": "Ledger",
		"dependency_1":     "X",
		"interface_type_1": "API",
	}

	fields := MapFields(rec)

	assert.Equal(t, "X (API)", fields["dependencies"])
	assert.Contains(t, fields["integration_points"], "1")
	assert.Equal(t, "1. X (API)", fields["dependency_list"])
}

func TestMapFields_DependencyWithoutInterfaceType(t *testing.T) {
	rec := Record{
		"application_name": "Ledger",
		"dependency_1":     "Billing Core",
	}

	fields := MapFields(rec)

	assert.Equal(t, "Billing Core (N/A)", fields["dependencies"])
}

func TestMapFields_MultipleDependenciesJoined(t *testing.T) {
	rec := Record{
		"application_name": "Ledger",
		"dependency_1":     "A",
		"interface_type_1": "API",
		"dependency_2":     "B",
		"interface_type_2": "File",
		"dependency_4":     "D",
	}

	fields := MapFields(rec)

	assert.Equal(t, "A (API), B (File), D (N/A)", fields["dependencies"])
	assert.Contains(t, fields["integration_points"], "3")
	assert.Equal(t, "1. A (API)\n2. B (File)\n3. D (N/A)", fields["dependency_list"])
}

func TestMapFields_NoDependencies(t *testing.T) {
	fields := MapFields(Record{"application_name": "Ledger"})

	assert.Equal(t, "None", fields["dependencies"])
	assert.Equal(t, "No external integrations", fields["integration_points"])
	assert.Equal(t, "No dependencies identified", fields["dependency_list"])
}

func TestMapFields_Defaults(t *testing.T) {
	fields := MapFields(Record{"application_name": "Ledger"})

	assert.Equal(t, "Not specified", fields["application_owner"])
	assert.Equal(t, "N/A", fields["application_id"])
	assert.Equal(t, "Not specified", fields["organization_name"])
	assert.Equal(t, "No description provided.", fields["application_description"])
	assert.Equal(t, "Unknown", fields["application_status"])
	assert.Equal(t, "Uncategorized", fields["application_category"])
	assert.Equal(t, "N/A", fields["application_tier"])
	assert.Equal(t, "0", fields["tco"])
	assert.Equal(t, "Not specified", fields["vendor"])
	assert.Equal(t, "Not specified", fields["license_info"])
}

func TestMapFields_IdentityPassThroughs(t *testing.T) {
	fields := MapFields(Record{
		"application_name":  "Ledger",
		"application_id":    "F1001",
		"organization_name": "AgroFuture",
	})

	assert.Equal(t, "F1001", fields["application_id"])
	assert.Equal(t, "AgroFuture", fields["organization_name"])
}

func TestMapFields_EmptyOwnerTreatedAsMissing(t *testing.T) {
	fields := MapFields(Record{
		"application_name":  "Ledger",
		"application_owner": "   ",
	})

	assert.Equal(t, "Not specified", fields["application_owner"])
}

func TestMapFields_LicenseUtilization(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "both present",
			rec:  Record{"license_units_used": "40", "license_units": "100"},
			want: "40 of 100 licenses used",
		},
		{
			name: "used missing",
			rec:  Record{"license_units": "100"},
			want: "Not specified",
		},
		{
			name: "total missing",
			rec:  Record{"license_units_used": "40"},
			want: "Not specified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := MapFields(tt.rec)
			assert.Equal(t, tt.want, fields["license_utilization"])
		})
	}
}

func TestMapFields_ContextInformation(t *testing.T) {
	fields := MapFields(Record{
		"application_name":  "Ledger",
		"organization_name": "AgroFuture",
		"portal_type":       "Customer Portal",
	})

	assert.Equal(t,
		"This application operates within AgroFuture's technology landscape, serving as a customer portal.",
		fields["context_information"])
}

func TestMapFields_Deterministic(t *testing.T) {
	rec := Record{
		"application_name": "Ledger",
		"dependency_1":     "X",
		"interface_type_1": "API",
		"license_status":   "Active",
	}

	first := MapFields(rec)
	second := MapFields(rec)

	require.Equal(t, first, second)
}
