package response

// HTTP body shapes for the public API. Success responses carry a message or a
// payload; failures carry an error and, for unexpected failures, details.

type Message struct {
	Message string `json:"message"`
}

type Error struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Msg builds a success body.
func Msg(message string) Message {
	return Message{Message: message}
}

// Err builds an error body without details.
func Err(message string) Error {
	return Error{Error: message}
}

// ErrDetails builds an error body carrying the underlying failure text.
func ErrDetails(message string, cause error) Error {
	e := Error{Error: message}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}
