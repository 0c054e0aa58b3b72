// Package workflow declares the multi-step conversation flows: for each flow,
// the ordered steps with their prompts and validators, and the commit action
// that turns a completed data bag into a persisted record.
//
// Validation is pure (no I/O); only the commit touches the store. The engine
// drives these definitions without knowing anything about any particular
// flow.
package workflow

import (
	"context"

	"github.com/dmtrv/lifebot/internal/models"
	"github.com/dmtrv/lifebot/internal/session"
	"github.com/dmtrv/lifebot/internal/storage"
)

// ParseFunc validates and transforms one step's raw input. On failure the
// returned error's text is the user-facing re-prompt message.
type ParseFunc func(input string) (any, error)

// CommitFunc is the terminal-step side effect. The returned string is the
// user-facing result (success or not-found); a non-nil error means the store
// itself failed and the session must be kept for retry.
type CommitFunc func(ctx context.Context, store storage.Store, userID int64, data *session.Bag) (string, error)

// Step is one prompt/validate/store-field unit. A step is terminal when it is
// the last in its workflow's list.
type Step struct {
	// Field is the bag key the parsed value is stored under.
	Field string

	// Prompt is shown when the step becomes current.
	Prompt string

	// Choices, when non-nil, is a reply keyboard offered with the prompt.
	Choices [][]string

	// Parse validates the input for this step.
	Parse ParseFunc
}

// Workflow is a named ordered sequence of steps ending in a commit.
type Workflow struct {
	ID     models.WorkflowID
	Steps  []Step
	Commit CommitFunc
}

// Terminal reports whether the given step index is the workflow's last.
func (w *Workflow) Terminal(step int) bool {
	return step == len(w.Steps)-1
}
