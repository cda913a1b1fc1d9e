// Package sanitize transforms datasets according to a chosen action,
// driven by per-cell detection results.
package sanitize

// Action is the closed set of sanitization transformations.
type Action int

const (
	ActionRedact Action = iota + 1
	ActionAnonymize
	ActionRemove
	ActionMask
)

// String returns the lowercase action token.
func (a Action) String() string {
	switch a {
	case ActionRedact:
		return "redact"
	case ActionAnonymize:
		return "anonymize"
	case ActionRemove:
		return "remove"
	case ActionMask:
		return "mask"
	default:
		return "unspecified"
	}
}

// valid reports whether the action is one of the defined constants.
func (a Action) valid() bool {
	switch a {
	case ActionRedact, ActionAnonymize, ActionRemove, ActionMask:
		return true
	}
	return false
}

// ParseAction converts a caller-supplied token into an Action.
// Unrecognized tokens are a caller error.
func ParseAction(token string) (Action, error) {
	switch token {
	case "redact":
		return ActionRedact, nil
	case "anonymize":
		return ActionAnonymize, nil
	case "remove":
		return ActionRemove, nil
	case "mask":
		return ActionMask, nil
	default:
		return 0, &InvalidActionError{Token: token}
	}
}

// InvalidActionError reports an unrecognized action token.
type InvalidActionError struct {
	Token string
}

func (e *InvalidActionError) Error() string {
	return "invalid action: " + e.Token
}

// InvalidColumnError reports a target column absent from the dataset.
type InvalidColumnError struct {
	Column string
}

func (e *InvalidColumnError) Error() string {
	return "invalid column: " + e.Column
}
