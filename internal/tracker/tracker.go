// Package tracker applies user actions to the event log. Session state is
// always derived from the log, so every operation validates against a
// replay of the history rather than a stored flag.
package tracker

import (
	"time"

	"github.com/punch-project/punch/pkg/errclass"
	"github.com/punch-project/punch/pkg/model"
)

// Action names a state machine transition for error reporting and output.
type Action string

const (
	ActionStart      Action = "start"
	ActionStop       Action = "stop"
	ActionBreakStart Action = "break-start"
	ActionBreakStop  Action = "break-stop"
	ActionCancel     Action = "cancel"
)

// Result is the success payload of a transition.
type Result struct {
	Action Action
	// State is the derived session state after the transition.
	State model.SessionState
	// Appended holds the events added by the transition.
	Appended []model.Event
	// Removed is the event taken off the tail by a cancel.
	Removed *model.Event
	// NoOp is set when a cancel found nothing to undo.
	NoOp bool
}

func illegal(action Action, state model.SessionState, reason string) error {
	return errclass.ErrState.WithMessagef("%s while %s: %s", action, state, reason)
}

// Start begins a work period at t. Legal only while idle.
func Start(log *model.Log, t time.Time) (Result, error) {
	if state := log.State(); state != model.Idle {
		return Result{}, illegal(ActionStart, state, "already started")
	}
	e := model.NewEvent(model.KindStart, t)
	log.Append(e)
	return Result{Action: ActionStart, State: log.State(), Appended: []model.Event{e}}, nil
}

// Stop ends the open work period at t. Legal only while working; an open
// break has to be stopped or canceled first.
func Stop(log *model.Log, t time.Time) (Result, error) {
	switch state := log.State(); state {
	case model.Idle:
		return Result{}, illegal(ActionStop, state, "no start found")
	case model.OnBreak:
		return Result{}, illegal(ActionStop, state, "stop the break first")
	}
	e := model.NewEvent(model.KindStop, t)
	log.Append(e)
	return Result{Action: ActionStop, State: log.State(), Appended: []model.Event{e}}, nil
}

// StartBreak begins a break at t. Legal only while working.
func StartBreak(log *model.Log, t time.Time) (Result, error) {
	switch state := log.State(); state {
	case model.Idle:
		return Result{}, illegal(ActionBreakStart, state, "no start found")
	case model.OnBreak:
		return Result{}, illegal(ActionBreakStart, state, "already on a break")
	}
	e := model.NewEvent(model.KindBreakStart, t)
	log.Append(e)
	return Result{Action: ActionBreakStart, State: log.State(), Appended: []model.Event{e}}, nil
}

// StopBreak ends the open break at t.
func StopBreak(log *model.Log, t time.Time) (Result, error) {
	if state := log.State(); state != model.OnBreak {
		return Result{}, illegal(ActionBreakStop, state, "no open break")
	}
	e := model.NewEvent(model.KindBreakStop, t)
	log.Append(e)
	return Result{Action: ActionBreakStop, State: log.State(), Appended: []model.Event{e}}, nil
}

// RecordBreak appends a completed break of duration d ending at now.
// Legal only while working.
func RecordBreak(log *model.Log, now time.Time, d time.Duration) (Result, error) {
	if d <= 0 {
		return Result{}, errclass.ErrParse.WithMessagef("break duration must be positive, got %s", d)
	}
	switch state := log.State(); state {
	case model.Idle:
		return Result{}, illegal(ActionBreakStart, state, "no start found")
	case model.OnBreak:
		return Result{}, illegal(ActionBreakStart, state, "already on a break")
	}
	begin := model.NewEvent(model.KindBreakStart, now.Add(-d))
	end := model.NewEvent(model.KindBreakStop, now)
	log.Append(begin)
	log.Append(end)
	return Result{Action: ActionBreakStart, State: log.State(), Appended: []model.Event{begin, end}}, nil
}

// Cancel removes the most recent event. While idle there is nothing to
// undo, which is reported as a no-op rather than an error.
func Cancel(log *model.Log) (Result, error) {
	if log.State() == model.Idle {
		return Result{Action: ActionCancel, State: model.Idle, NoOp: true}, nil
	}
	removed, _ := log.RemoveLast()
	return Result{Action: ActionCancel, State: log.State(), Removed: &removed}, nil
}
