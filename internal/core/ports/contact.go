package ports

import "context"

// ContactMessage is a visitor enquiry from the public contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

type ContactService interface {
	Submit(ctx context.Context, msg ContactMessage) error
}
