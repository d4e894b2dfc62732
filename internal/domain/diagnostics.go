package domain

// DiagnosticStatus indicates doctor check outcomes.
type DiagnosticStatus string

const (
	DiagnosticOK    DiagnosticStatus = "ok"
	DiagnosticWarn  DiagnosticStatus = "warn"
	DiagnosticError DiagnosticStatus = "error"
)

// DiagnosticCheck captures a single diagnostic result.
type DiagnosticCheck struct {
	Name    string
	Status  DiagnosticStatus
	Details string
}

// DiagnosticReport aggregates checks.
type DiagnosticReport struct {
	Checks []DiagnosticCheck
}
