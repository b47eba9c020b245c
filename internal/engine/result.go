// Package engine implements the projection consistency rules: overrides with
// dependent recomputation, proportional adjustments, historical regression,
// team reconciliation and fill-player synthesis. Everything here is pure:
// functions mutate the records they are handed and report what they did; the
// services layer owns loading, transactions and persistence.
package engine

import "fmt"

// Result reports the soft outcome of an engine operation. Hard failures are
// returned as errors; consistency issues that were found (and possibly
// auto-corrected) are counted here and never thrown.
type Result struct {
	IssuesFound int      `json:"issues_found"`
	IssuesFixed int      `json:"issues_fixed"`
	Notes       []string `json:"notes,omitempty"`
}

// AddNote records a human-readable description of an issue.
func (r *Result) AddNote(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Merge folds another result's counts and notes into this one.
func (r *Result) Merge(other Result) {
	r.IssuesFound += other.IssuesFound
	r.IssuesFixed += other.IssuesFixed
	r.Notes = append(r.Notes, other.Notes...)
}
