package report

import (
	"fmt"
	"strings"

	"github.com/jonathan/docwriter/internal/record"
)

// minBoundContentLength is the heuristic threshold below which bound section
// content is considered a template stub too short to be useful.
const minBoundContentLength = 100

// NeedsSynthesis reports whether bound section content should be replaced by
// synthesized or enhanced prose: either a placeholder survived binding, or
// the content is shorter than the stub threshold.
func NeedsSynthesis(bound string) bool {
	return strings.Contains(bound, "{") || len(bound) < minBoundContentLength
}

// Synthesize produces deterministic section prose from the record alone,
// used when no enhancement capability is configured or enhancement fails.
// Known section titles are matched case-insensitively; unknown titles get a
// generic paragraph referencing the section and core record fields.
func Synthesize(sectionTitle string, rec record.Record) string {
	name := fieldOr(rec, "application_name", "Unnamed Application")
	org := fieldOr(rec, "organization_name", "the organization")
	category := fieldOr(rec, "application_category", "Uncategorized")
	area := fieldOr(rec, "application_area", "N/A")
	owner := fieldOr(rec, "application_owner", "Not specified")
	tier := fieldOr(rec, "application_tier", "N/A")
	vendor := fieldOr(rec, "application_vendor", "Not specified")

	switch strings.ToLower(sectionTitle) {
	case "executive summary":
		return fmt.Sprintf("This report provides a comprehensive analysis of %s, a %s maintained by %s. "+
			"The application serves as a critical component of the organization's technology infrastructure, "+
			"supporting business operations within the %s domain. This analysis covers technical architecture, "+
			"dependencies, financial considerations, and strategic recommendations for ongoing optimization and enhancement.",
			name, strings.ToLower(category), org, area)

	case "technical architecture":
		return fmt.Sprintf("%s is classified as a %s application within the %s category. "+
			"The system operates within the %s area and is owned by %s. "+
			"The application integrates with multiple external systems to provide comprehensive functionality "+
			"and supports the organization's operational requirements through robust technical architecture "+
			"and established integration patterns.",
			name, tier, category, area, owner)

	case "dependencies":
		return fmt.Sprintf("This application maintains strategic integrations with several key systems within "+
			"%s's technology landscape. These dependencies are critical for the application's functionality "+
			"and represent important considerations for maintenance, upgrades, and business continuity planning. "+
			"The integration architecture follows enterprise standards and best practices for data exchange "+
			"and system interoperability.",
			org)

	case "context model":
		return fmt.Sprintf("%s operates within %s's broader technology ecosystem, serving users and interfacing "+
			"with complementary systems. The application's context encompasses both internal organizational systems "+
			"and external service providers, creating a comprehensive operational environment that supports "+
			"business objectives and user requirements.",
			name, org)

	case "footprint":
		return fmt.Sprintf("The financial footprint of %s includes total cost of ownership considerations, "+
			"licensing arrangements, and operational expenditures. The application is supported by %s with "+
			"licensing managed according to organizational standards. Current license utilization and renewal "+
			"schedules are monitored to ensure optimal cost management and compliance with vendor agreements.",
			name, vendor)

	case "capability automation":
		return fmt.Sprintf("%s provides automated support for key business capabilities within %s. "+
			"The application streamlines operational processes, reduces manual effort, and enables scalable "+
			"business operations. Through its automated capabilities, the system contributes to organizational "+
			"efficiency and supports strategic business objectives within the %s domain.",
			name, org, area)

	case "recommendations":
		return fmt.Sprintf("Based on the analysis of %s, several strategic recommendations emerge for optimization "+
			"and enhancement. These recommendations focus on maintaining system performance, optimizing integration "+
			"architecture, managing licensing costs effectively, and ensuring alignment with evolving business "+
			"requirements. Regular review and assessment of these recommendations will support continued value "+
			"delivery and operational excellence.",
			name)

	default:
		return fmt.Sprintf("This section provides detailed information about %s for %s. "+
			"The application, maintained by %s, represents a key component of the organization's technology "+
			"infrastructure and supports critical business operations within the %s domain.",
			strings.ToLower(sectionTitle), name, org, area)
	}
}

func fieldOr(rec record.Record, key, fallback string) string {
	if v := rec.Get(key); v != "" {
		return v
	}
	return fallback
}
