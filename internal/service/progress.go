package service

import "github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"

// StatusCounts is the per-status distribution of a scoped case set.
type StatusCounts map[models.CaseStatus]int

func (sc StatusCounts) Total() int {
	total := 0
	for _, n := range sc {
		total += n
	}
	return total
}

// Progress is the heuristic five-step pipeline summary. It is derived from
// the status distribution on every call, never stored.
type Progress struct {
	Steps            []string `json:"steps"`
	CurrentStepIndex int      `json:"currentStepIndex"`
}

var progressSteps = []string{
	"Case Created",
	"Under Review",
	"Investigation",
	"Resolution Phase",
	"Completed",
}

var zeroCaseSteps = []string{
	"No Cases",
	"Create Case",
	"Submit Details",
	"Await Assignment",
	"In Progress",
}

// BuildProgress evaluates the ratio thresholds in order against the scoped
// total. With no cases in scope it returns the zero-state label set.
func BuildProgress(counts StatusCounts) Progress {
	total := counts.Total()
	if total == 0 {
		return Progress{Steps: zeroCaseSteps, CurrentStepIndex: 0}
	}

	open := counts[models.StatusOpen]
	inProgress := counts[models.StatusInProgress]
	pending := counts[models.StatusPending]
	resolved := counts[models.StatusResolved] + counts[models.StatusClosed]

	var idx int
	switch {
	case float64(resolved)/float64(total) >= 0.8:
		idx = 4
	case float64(resolved+pending)/float64(total) >= 0.6:
		idx = 3
	case float64(inProgress)/float64(total) >= 0.4:
		idx = 2
	case float64(open) < float64(total)*0.8:
		idx = 1
	default:
		idx = 0
	}
	return Progress{Steps: progressSteps, CurrentStepIndex: idx}
}
