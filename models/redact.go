package models

// Viewer roles for ticket projections. The public projection currently
// excludes nothing; the admin projection hides the commercial contract URL.
// Keeping both exclusion sets in one table makes the redaction rules a
// single edit rather than per-endpoint deletions.
type Viewer string

const (
    ViewerPublic Viewer = "PUBLIC"
    ViewerAdmin  Viewer = "ADMIN"
)

var redactedFields = map[Viewer][]string{
    ViewerPublic: {},
    ViewerAdmin:  {"commercial_contract_file_url"},
}

// RedactedFields returns the JSON field names excluded from a viewer's
// projection.
func RedactedFields(v Viewer) []string {
    return redactedFields[v]
}

// Redact returns a copy of the ticket with the viewer's excluded fields
// cleared. Cleared URL fields carry omitempty, so they disappear from the
// serialized projection.
func Redact(t Ticket, v Viewer) Ticket {
    for _, field := range redactedFields[v] {
        switch field {
        case "commercial_contract_file_url":
            t.CommercialContractFileURL = ""
        }
    }
    return t
}
