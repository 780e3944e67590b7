package assistant

import "fmt"

// Outcome is how the widget classified a webhook response.
type Outcome int

const (
	// OutcomeAction means the response asked the widget to open a project page.
	OutcomeAction Outcome = iota
	// OutcomeModalAction means the response asked for the project gallery modal.
	OutcomeModalAction
	// OutcomeUnexpectedFormat means the response did not match any known shape.
	OutcomeUnexpectedFormat
	// OutcomeError means the request or response handling failed.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAction:
		return "action"
	case OutcomeModalAction:
		return "modal_action"
	case OutcomeUnexpectedFormat:
		return "unexpected_format"
	case OutcomeError:
		return "error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ParseOutcome converts the string form of an outcome back to an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{OutcomeAction, OutcomeModalAction, OutcomeUnexpectedFormat, OutcomeError} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome: %q", s)
}

// MessageFor returns the canned reply for an outcome. Unknown outcomes get
// the generic error message.
func (c *Config) MessageFor(o Outcome) string {
	switch o {
	case OutcomeAction:
		return c.messages.ActionResponse
	case OutcomeModalAction:
		return c.messages.ModalActionResponse
	case OutcomeUnexpectedFormat:
		return c.messages.UnexpectedFormat
	default:
		return c.messages.ErrorMessage
	}
}
