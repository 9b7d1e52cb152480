package moderation

import (
	"errors"
	"fmt"

	"memorywall/internal/model"
)

var ErrInvalidTransition = errors.New("invalid submission transition")

type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateDeleted  State = "deleted"
)

type Action string

const (
	ActionApprove   Action = "approve"
	ActionUnapprove Action = "unapprove"
	ActionDelete    Action = "delete"
)

func StateOf(sub *model.Submission) State {
	if sub == nil {
		return StateDeleted
	}
	if sub.Approved {
		return StateApproved
	}
	return StatePending
}

// Transition returns the state reached by applying an organizer action to
// from, and whether the state actually changed. Repeating an approval or
// un-approval is allowed and reports changed=false. Deleted is terminal.
// Automatic approval is not an action here: it is the conditional update in
// the repository, which only ever moves Pending to Approved.
func Transition(from State, action Action) (State, bool, error) {
	if from == StateDeleted {
		return from, false, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, action, from)
	}

	switch action {
	case ActionApprove:
		return StateApproved, from != StateApproved, nil
	case ActionUnapprove:
		return StatePending, from != StatePending, nil
	case ActionDelete:
		return StateDeleted, true, nil
	}

	return from, false, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
}

// ToggleAction is the organizer action that sets approved to the given value.
func ToggleAction(approved bool) Action {
	if approved {
		return ActionApprove
	}
	return ActionUnapprove
}
