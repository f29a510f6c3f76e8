package lifecycle

import "fitpromo/internal/models"

type OutcomeKind string

const (
	OutcomeNone    OutcomeKind = ""
	OutcomePending OutcomeKind = "pending"
	OutcomeOK      OutcomeKind = "ok"
	OutcomeErr     OutcomeKind = "error"
)

// SubmitOutcome is the result of the last submission: still in flight, a
// created Generation, or the reason it failed.
type SubmitOutcome struct {
	Kind       OutcomeKind
	Generation *models.Generation
	Err        error
}

func Pending() SubmitOutcome { return SubmitOutcome{Kind: OutcomePending} }

func OK(gen *models.Generation) SubmitOutcome {
	return SubmitOutcome{Kind: OutcomeOK, Generation: gen}
}

func Failed(err error) SubmitOutcome { return SubmitOutcome{Kind: OutcomeErr, Err: err} }

func (o SubmitOutcome) IsPending() bool { return o.Kind == OutcomePending }
