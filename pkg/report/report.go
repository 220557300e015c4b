package report

import (
	"github.com/arthur-debert/liscaf/pkg/executor"
	"github.com/arthur-debert/liscaf/pkg/merge"
	"github.com/arthur-debert/liscaf/pkg/substitution"
	"github.com/arthur-debert/liscaf/pkg/types"
)

// Report gathers everything a run decided and did
type Report struct {
	Template    string `json:"template"`
	Destination string `json:"destination"`
	DryRun      bool   `json:"dry_run"`
	InPlace     bool   `json:"in_place"`

	Plan        *substitution.Plan `json:"plan"`
	Actions     []types.FileAction `json:"actions"`
	Resolutions []merge.Resolution `json:"resolutions,omitempty"`
	Warnings    []types.Warning    `json:"warnings"`
	Commit      *executor.Report   `json:"commit,omitempty"`
}

// Summary holds the counts printed at the end of a report
type Summary struct {
	Actions        int  `json:"actions"`
	Written        int  `json:"written"`
	Skipped        int  `json:"skipped"`
	ConflictText   int  `json:"conflict_text"`
	ConflictBinary int  `json:"conflict_binary"`
	WrittenAside   int  `json:"written_aside"`
	Warnings       int  `json:"warnings"`
	Failures       int  `json:"failures"`
	DryRun         bool `json:"dry_run"`
}

// Conflicts is the number of paths left for the user to reconcile
func (s Summary) Conflicts() int {
	return s.ConflictText + s.ConflictBinary + s.WrittenAside
}

// Summary tallies the report
func (r *Report) Summary() Summary {
	s := Summary{
		Actions: len(r.Actions),
		DryRun:  r.DryRun,
	}
	for outcome, n := range merge.Count(r.Resolutions) {
		switch outcome {
		case types.OutcomeWritten:
			s.Written = n
		case types.OutcomeSkipped:
			s.Skipped = n
		case types.OutcomeConflictText:
			s.ConflictText = n
		case types.OutcomeConflictBinary:
			s.ConflictBinary = n
		case types.OutcomeWrittenAside:
			s.WrittenAside = n
		}
	}
	s.Warnings = len(r.Warnings)
	if r.Commit != nil {
		s.Warnings += len(r.Commit.Warnings)
		s.Failures = len(r.Commit.Failures)
	}
	return s
}

// Failed reports whether the run must exit with an error status
func (r *Report) Failed() bool {
	return r.Commit != nil && r.Commit.Failed()
}
