package reconcile

// Final status of a single scope's reconciliation.
type Status int

const (
	// The declaration failed validation and was never applied.
	StatusInvalid Status = iota
	// The run was in dry-run mode; the outcome records the actions
	// that would have been taken.
	StatusDryRun
	// The scope was created or its options were brought up to date.
	StatusApplied
	// The scope already matched the declaration; no call was made.
	StatusNoOpExists
	// A required gateway call failed for this scope.
	StatusError
)

// Returns a human readable status name.
func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusDryRun:
		return "dry-run"
	case StatusApplied:
		return "applied"
	case StatusNoOpExists:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome of reconciling a single scope declaration. Details holds the
// joined validation errors, the applied change summary or the caught
// error message, depending on the status.
type ScopeOutcome struct {
	Name    string
	ScopeID string
	Status  Status
	Details string
}

// Aggregated outcome of a reconciliation run: one ScopeOutcome per
// input declaration, preserving input order. The report is built by
// the reconciliation loop and never mutated afterwards; rendering it
// is the caller's concern.
type RunReport struct {
	outcomes []ScopeOutcome
}

// Appends an outcome to the report.
func (r *RunReport) record(outcome ScopeOutcome) {
	r.outcomes = append(r.outcomes, outcome)
}

// Returns a copy of the per-scope outcomes in input order.
func (r *RunReport) Outcomes() []ScopeOutcome {
	outcomes := make([]ScopeOutcome, len(r.outcomes))
	copy(outcomes, r.outcomes)
	return outcomes
}

// Returns the count of outcomes per status kind for the batch-level
// summary.
func (r *RunReport) Tally() map[Status]int {
	tally := make(map[Status]int)
	for _, outcome := range r.outcomes {
		tally[outcome.Status]++
	}
	return tally
}
