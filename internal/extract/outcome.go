package extract

import "creditlens/pkg/types"

// Outcome tags an extraction result so callers can tell a clean report
// apart from a broken extraction. No path substitutes sample data
// silently; the demo dataset is only reachable through SampleReport.
type Outcome string

const (
	OutcomeFound  Outcome = "found"
	OutcomeEmpty  Outcome = "empty"
	OutcomeFailed Outcome = "failed"
)

type Extraction struct {
	Outcome Outcome
	Reason  string
	Report  *types.ParsedReport
}

func Found(report *types.ParsedReport) Extraction {
	report.EnsureDefaults()
	return Extraction{Outcome: OutcomeFound, Report: report}
}

func Empty(reason string) Extraction {
	return Extraction{Outcome: OutcomeEmpty, Reason: reason}
}

func Failed(reason string) Extraction {
	return Extraction{Outcome: OutcomeFailed, Reason: reason}
}
