package wizard

import (
	"context"
	"time"

	"healthquote-funnel/internal/common/metrics"
)

// Transition describes the result of a navigation request.
type Transition struct {
	From      int
	To        int
	Route     string
	Blocked   bool
	Submitted bool
	Redirect  string
}

// Navigator keeps the step index in [1, N] and in sync with the route.
type Navigator struct {
	state     *FormState
	submitter *Submitter
	step      int
	now       func() time.Time
}

// NewNavigator starts at step, falling back to 1 when the route gave none or an invalid one.
func NewNavigator(state *FormState, step int, submitter *Submitter) *Navigator {
	n := &Navigator{state: state, submitter: submitter, step: 1, now: time.Now}
	n.JumpTo(step)
	return n
}

func (n *Navigator) Step() int { return n.step }

func (n *Navigator) Route() string {
	return n.state.Variant().Route(n.step)
}

func (n *Navigator) IsLastStep() bool {
	return n.step == n.state.Variant().StepCount()
}

// Advance validates the current step. On success it moves forward, or submits from the last
// step. Errors land in the state's error map.
func (n *Navigator) Advance(ctx context.Context) (Transition, error) {
	v := n.state.Variant()
	from := n.step
	variant := string(v.FormType)

	errs := v.ValidateStep(n.state.Record(), n.step, n.now())
	n.state.SetErrors(errs)
	if len(errs) > 0 {
		metrics.WizardTransitions.WithLabelValues(variant, "advance", "blocked").Inc()
		return Transition{From: from, To: from, Route: n.Route(), Blocked: true}, nil
	}

	if n.step < v.StepCount() {
		n.step++
		metrics.WizardTransitions.WithLabelValues(variant, "advance", "ok").Inc()
		return Transition{From: from, To: n.step, Route: n.Route()}, nil
	}

	outcome, err := n.submitter.Submit(ctx, n.state)
	if err != nil {
		return Transition{From: from, To: from, Route: n.Route(), Blocked: true}, err
	}
	if !outcome.Submitted {
		metrics.WizardTransitions.WithLabelValues(variant, "advance", "submit_failed").Inc()
		return Transition{From: from, To: from, Route: n.Route(), Blocked: true}, nil
	}
	metrics.WizardTransitions.WithLabelValues(variant, "advance", "submitted").Inc()
	return Transition{From: from, To: from, Route: n.Route(), Submitted: true, Redirect: outcome.Redirect}, nil
}

// Retreat moves back one step without validating. At step 1 it does nothing.
func (n *Navigator) Retreat() Transition {
	from := n.step
	if n.step > 1 {
		n.step--
		metrics.WizardTransitions.WithLabelValues(string(n.state.Variant().FormType), "retreat", "ok").Inc()
	}
	return Transition{From: from, To: n.step, Route: n.Route()}
}

// JumpTo sets the step directly, trusting the caller for earlier steps. Out of range is a no-op.
func (n *Navigator) JumpTo(k int) bool {
	if k < 1 || k > n.state.Variant().StepCount() {
		return false
	}
	n.step = k
	return true
}
