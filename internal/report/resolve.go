package report

import "strings"

// Identity carries the concrete values for the three identity placeholders.
type Identity struct {
	ApplicationName  string
	OrganizationName string
	ApplicationID    string
}

// Identity placeholder tokens kept unresolved in stored canonical HTML.
const (
	TokenApplicationName  = "{application_name}"
	TokenOrganizationName = "{organization_name}"
	TokenApplicationID    = "{application_id}"
)

// Resolve substitutes the three identity placeholders in canonical HTML with
// concrete values for display or export. The substitution is a single pass
// and never recursive; input without any identity token is returned
// unchanged. The result is never persisted back into the stored report.
func Resolve(htmlContent string, id Identity) string {
	name := id.ApplicationName
	if name == "" {
		name = "Application Name"
	}
	org := id.OrganizationName
	if org == "" {
		org = "Organization Name"
	}
	appID := id.ApplicationID
	if appID == "" {
		appID = "Application ID"
	}

	return strings.NewReplacer(
		TokenApplicationName, name,
		TokenOrganizationName, org,
		TokenApplicationID, appID,
	).Replace(htmlContent)
}
