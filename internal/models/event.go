package models

// EventKind distinguishes a typed message from a discrete button callback.
// Finer classification (command vs. menu label vs. free text) happens in the
// router, after the transport has produced a typed event.
type EventKind string

const (
	EventText     EventKind = "text"
	EventCallback EventKind = "callback"
)

// Event is one inbound interaction, already detached from the transport.
type Event struct {
	UserID    int64
	Username  string
	FirstName string
	Kind      EventKind

	// Payload is the message text for EventText, or the callback token for
	// EventCallback (e.g. "complete_habit_42").
	Payload string
}

// InlineButton is one choice in an inline keyboard; pressing it produces an
// EventCallback with Data as the payload.
type InlineButton struct {
	Label string
	Data  string
}

// Response is one outbound message. Keyboard and Inline are mutually
// exclusive in practice; Toast is only meaningful when answering a callback.
type Response struct {
	Text string

	// Keyboard replaces the user's reply keyboard when non-nil.
	Keyboard [][]string

	// Inline attaches an inline keyboard to this message.
	Inline []InlineButton

	// Toast is a short popup acknowledgement for callback events.
	Toast string
}
