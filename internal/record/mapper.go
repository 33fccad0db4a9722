package record

import (
	"fmt"
	"strings"
)

// FieldMap is the resolved, per-record set of substitution values keyed by
// placeholder name. It is built once per record and not mutated afterward.
type FieldMap map[string]string

// maxDependencySlots is the number of dependency/interface-type column pairs
// scanned when aggregating the dependency fields.
const maxDependencySlots = 4

// MapFields converts one record into a FieldMap. Direct pass-through fields
// receive documented defaults when absent; derived fields (dependencies,
// license utilization, context prose) are computed from multiple columns.
// Pure function: no I/O, no randomness.
func MapFields(rec Record) FieldMap {
	deps := dependencyEntries(rec)

	fields := FieldMap{
		"application_name":        withDefault(rec, "application_name", "Unnamed Application"),
		"application_id":          withDefault(rec, "application_id", "N/A"),
		"organization_name":       withDefault(rec, "organization_name", "Not specified"),
		"application_description": withDefault(rec, "application_description", "No description provided."),
		"application_status":      withDefault(rec, "application_status", "Unknown"),
		"application_owner":       withDefault(rec, "application_owner", "Not specified"),
		"business_owner":          withDefault(rec, "business_owner", "Not specified"),
		"application_location":    withDefault(rec, "application_location", "Not specified"),
		"application_category":    withDefault(rec, "application_category", "Uncategorized"),
		"application_tier":        withDefault(rec, "application_tier", "N/A"),
		"application_area":        withDefault(rec, "application_area", "N/A"),

		"dependencies":       joinOrDefault(deps, ", ", "None"),
		"integration_points": integrationPoints(deps),
		"dependency_list":    dependencyList(deps),

		"context_information": contextInformation(rec),

		"tco":    withDefault(rec, "application_tco", "0"),
		"capex":  withDefault(rec, "application_capex", "0"),
		"opex":   withDefault(rec, "application_opex", "0"),
		"vendor": withDefault(rec, "application_vendor", "Not specified"),

		"license_info":        withDefault(rec, "license_name", "Not specified"),
		"license_start":       withDefault(rec, "license_start_date", "Not specified"),
		"license_end":         withDefault(rec, "license_end_date", "Not specified"),
		"license_utilization": licenseUtilization(rec),

		"capabilities":    capabilities(rec),
		"recommendations": recommendations(rec),
	}

	return fields
}

// dependencyEntries collects the populated dependency slots, each formatted
// as "name (interface type)" with "N/A" standing in for a missing type.
func dependencyEntries(rec Record) []string {
	var entries []string
	for i := 1; i <= maxDependencySlots; i++ {
		name := rec.Get(fmt.Sprintf("dependency_%d", i))
		if name == "" {
			continue
		}
		ifaceType := rec.Get(fmt.Sprintf("interface_type_%d", i))
		if ifaceType == "" {
			ifaceType = "N/A"
		}
		entries = append(entries, fmt.Sprintf("%s (%s)", name, ifaceType))
	}
	return entries
}

func integrationPoints(deps []string) string {
	if len(deps) == 0 {
		return "No external integrations"
	}
	return fmt.Sprintf("Integrates with %d external systems", len(deps))
}

func dependencyList(deps []string) string {
	if len(deps) == 0 {
		return "No dependencies identified"
	}
	lines := make([]string, len(deps))
	for i, dep := range deps {
		lines[i] = fmt.Sprintf("%d. %s", i+1, dep)
	}
	return strings.Join(lines, "\n")
}

func contextInformation(rec Record) string {
	org := withDefault(rec, "organization_name", "the organization")
	portal := strings.ToLower(withDefault(rec, "portal_type", "portal"))
	return fmt.Sprintf("This application operates within %s's technology landscape, serving as a %s.", org, portal)
}

func licenseUtilization(rec Record) string {
	used := rec.Get("license_units_used")
	total := rec.Get("license_units")
	if used == "" || total == "" {
		return "Not specified"
	}
	return fmt.Sprintf("%s of %s licenses used", used, total)
}

func capabilities(rec Record) string {
	area := withDefault(rec, "application_area", "relevant")
	return fmt.Sprintf("This application supports core business operations within the %s domain.", area)
}

func recommendations(rec Record) string {
	status := withDefault(rec, "license_status", "N/A")
	return fmt.Sprintf("Based on the analysis, consider monitoring license utilization (%s) and evaluating integration architecture for optimization opportunities.", status)
}

func joinOrDefault(parts []string, sep, fallback string) string {
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, sep)
}

func withDefault(rec Record, key, fallback string) string {
	if v := rec.Get(key); v != "" {
		return v
	}
	return fallback
}
