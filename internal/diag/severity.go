package diag

import "strings"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo carries observations such as OBS6001 timings.
	SevInfo Severity = iota
	// SevWarning is for recoverable problems: ignored clauses, formatter failures.
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Label is the lower-case form used in pretty output ("error", "warning").
func (s Severity) Label() string {
	return strings.ToLower(s.String())
}
