// Package engine drives multi-step conversations. Given an inbound event and
// the user's current session it validates the input against the active step,
// re-prompts, advances, or runs the terminal commit against the record store.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmtrv/lifebot/internal/metrics"
	"github.com/dmtrv/lifebot/internal/models"
	"github.com/dmtrv/lifebot/internal/session"
	"github.com/dmtrv/lifebot/internal/storage"
	"github.com/dmtrv/lifebot/internal/workflow"
)

// storeFailureText is shown when a commit fails for reasons validators could
// not anticipate. The session is kept so the user can retry the same step.
const storeFailureText = "⚠️ Не удалось сохранить данные. Попробуйте ещё раз."

// Outcome is the engine's answer to one event: a prompt, an error message, or
// a commit result.
type Outcome struct {
	Text     string
	Keyboard [][]string

	// Workflow identifies the flow that produced this outcome.
	Workflow models.WorkflowID

	// Done is true when a terminal commit ran and the session was cleared.
	Done bool
}

// Engine owns the session store and dispatches events to workflow steps.
type Engine struct {
	sessions *session.Store
	store    storage.Store
	flows    map[models.WorkflowID]*workflow.Workflow
}

// New creates an engine over the given session and record stores, with all
// registered workflows.
func New(sessions *session.Store, store storage.Store) *Engine {
	return &Engine{
		sessions: sessions,
		store:    store,
		flows:    workflow.Registry(),
	}
}

// Active reports whether the user is mid-workflow.
func (e *Engine) Active(userID int64) bool {
	return e.sessions.Get(userID) != nil
}

// Start begins a workflow for the user at the given step, replacing any
// session already active for them. Seed fields let shortcut buttons pre-fill
// values for the steps being skipped.
func (e *Engine) Start(userID int64, id models.WorkflowID, startStep int, seed ...session.Field) (Outcome, error) {
	wf, ok := e.flows[id]
	if !ok {
		return Outcome{}, fmt.Errorf("unknown workflow %q", id)
	}
	if startStep < 0 || startStep >= len(wf.Steps) {
		return Outcome{}, fmt.Errorf("workflow %q has no step %d", id, startStep)
	}

	e.sessions.Start(userID, id, startStep, seed...)
	metrics.WorkflowsStarted.WithLabelValues(string(id)).Inc()
	metrics.ActiveSessions.Set(float64(e.sessions.Len()))

	step := wf.Steps[startStep]
	return Outcome{Text: step.Prompt, Keyboard: step.Choices, Workflow: id}, nil
}

// Handle processes one event for a user who may be mid-workflow. The second
// return value is false when the user has no session, in which case the
// caller routes the event to ordinary command/menu handling.
func (e *Engine) Handle(ctx context.Context, userID int64, input string) (Outcome, bool) {
	sess := e.sessions.Get(userID)
	if sess == nil {
		return Outcome{}, false
	}

	wf, ok := e.flows[sess.Workflow]
	if !ok || sess.Step >= len(wf.Steps) {
		// Corrupt session; drop it rather than wedge the user.
		slog.Error("invalid session state", "user_id", userID, "workflow", sess.Workflow, "step", sess.Step)
		e.Abort(userID)
		return Outcome{}, false
	}

	step := wf.Steps[sess.Step]
	value, err := step.Parse(input)
	if err != nil {
		// Validation failure: re-prompt the same step, session unchanged.
		metrics.ValidationRejects.WithLabelValues(string(wf.ID)).Inc()
		return Outcome{Text: err.Error(), Keyboard: step.Choices, Workflow: wf.ID}, true
	}

	if !wf.Terminal(sess.Step) {
		e.sessions.Advance(userID, step.Field, value)
		next := wf.Steps[sess.Step+1]
		return Outcome{Text: next.Prompt, Keyboard: next.Choices, Workflow: wf.ID}, true
	}

	// Terminal step: merge the final field, then commit. On a store failure
	// the session is deliberately left in place so the user can retry
	// instead of losing everything they entered.
	e.sessions.Put(userID, step.Field, value)
	msg, err := wf.Commit(ctx, e.store, userID, sess.Data)
	if err != nil {
		slog.Error("workflow commit failed", "user_id", userID, "workflow", wf.ID, "error", err)
		metrics.StoreErrors.Inc()
		return Outcome{Text: storeFailureText, Keyboard: step.Choices, Workflow: wf.ID}, true
	}

	e.sessions.Clear(userID)
	metrics.WorkflowsCompleted.WithLabelValues(string(wf.ID)).Inc()
	metrics.ActiveSessions.Set(float64(e.sessions.Len()))

	return Outcome{Text: msg, Workflow: wf.ID, Done: true}, true
}

// Abort discards the user's session without committing anything. Returns true
// if a session existed. This is the only cancellation path; sessions have no
// expiry.
func (e *Engine) Abort(userID int64) bool {
	cleared := e.sessions.Clear(userID)
	metrics.ActiveSessions.Set(float64(e.sessions.Len()))
	return cleared
}
