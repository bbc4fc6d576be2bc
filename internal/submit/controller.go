// Package submit runs one form submission: collect, call the service, and
// produce what the form should show next.
package submit

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/ecf-team-win/internal/logging"
	"github.com/preston-bernstein/ecf-team-win/internal/metrics"
	"github.com/preston-bernstein/ecf-team-win/internal/ratings"
	"github.com/preston-bernstein/ecf-team-win/internal/results"
	"github.com/preston-bernstein/ecf-team-win/internal/teamwin"
)

// Calculator is the remote win-probability service.
type Calculator interface {
	TeamWin(ctx context.Context, teams ratings.Teams) (results.MatchResult, error)
}

// Observer is told about every state a submission passes through.
type Observer func(Outcome)

// Outcome is what the form displays after a step.
// Error is the error-box text; Status is the output-area text shown when
// there is no Display.
type Outcome struct {
	State   State                 `json:"state"`
	Error   string                `json:"error,omitempty"`
	Status  string                `json:"status,omitempty"`
	Teams   *ratings.Teams        `json:"teams,omitempty"`
	Result  *results.MatchResult  `json:"result,omitempty"`
	Display *results.DisplayModel `json:"display,omitempty"`
}

// Controller is stateless between submissions; overlapping submissions are
// not serialised.
type Controller struct {
	calc     Calculator
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewController wires a controller to its calculator.
func NewController(calc Calculator, logger *slog.Logger, recorder *metrics.Recorder) *Controller {
	return &Controller{
		calc:     calc,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

// Submit validates entries and, when they are valid, asks the service for
// win probabilities. observe may be nil.
func (c *Controller) Submit(ctx context.Context, entries []ratings.BoardEntry, observe Observer) Outcome {
	start := c.now()
	logger := logging.FromContext(ctx, c.logger)
	emit := func(o Outcome) Outcome {
		if observe != nil {
			observe(o)
		}
		if o.State.Terminal() {
			c.recorder.RecordSubmission(o.State.String(), c.now().Sub(start))
			logging.Info(logger, "submission finished",
				slog.String(logging.FieldState, o.State.String()),
				slog.Int(logging.FieldBoards, len(entries)),
			)
		}
		return o
	}

	emit(Outcome{State: Collecting, Status: StatusCalculating})

	teams, err := ratings.Collect(entries)
	if err != nil {
		return emit(Outcome{State: CollectError, Error: err.Error(), Status: StatusFixInput})
	}

	emit(Outcome{State: Submitting, Status: StatusCalculating, Teams: &teams})

	result, err := c.calc.TeamWin(ctx, teams)
	if err != nil {
		return emit(failureOutcome(err, &teams))
	}

	display := results.Render(result)
	return emit(Outcome{State: Success, Teams: &teams, Result: &result, Display: &display})
}

func failureOutcome(err error, teams *ratings.Teams) Outcome {
	if reqErr, ok := teamwin.AsRequestError(err); ok {
		return Outcome{State: RequestFailure, Error: reqErr.Error(), Status: StatusRequestFailed, Teams: teams}
	}
	// Anything without a response is treated as a connectivity problem.
	return Outcome{State: NetworkFailure, Error: teamwin.NetworkErrorMessage, Status: StatusRequestFailed, Teams: teams}
}
