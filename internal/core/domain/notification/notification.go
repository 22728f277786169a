package notification

import "context"

// Message is the content the core builds for out-of-band delivery. The
// dispatcher owns everything after that, failures never roll back the
// state transition that triggered the message.
type Message struct {
	To      string
	From    string
	Subject string
	Text    string
	HTML    string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, message Message) error
}
