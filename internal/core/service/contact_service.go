package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// ContactService accepts contact-form enquiries. Messages are only logged.
type ContactService struct {
	logger zerolog.Logger
}

func NewContactService(logger zerolog.Logger) *ContactService {
	return &ContactService{logger: logger}
}

func (s *ContactService) Submit(_ context.Context, msg ports.ContactMessage) error {
	name := strings.TrimSpace(msg.Name)
	email := strings.TrimSpace(msg.Email)
	body := strings.TrimSpace(msg.Message)

	if name == "" || email == "" || body == "" {
		return domain.Invalid("name, email and message are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Invalid("invalid email address")
	}

	s.logger.Info().Str("name", name).Str("email", email).Int("length", len(body)).Msg("contact message received")
	return nil
}
