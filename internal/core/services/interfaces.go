package services

import (
	"context"

	"hana-qna/internal/core/domain"
)

// FileStorage persists an uploaded blob and returns the url it is served from
type FileStorage interface {
	SaveFile(ctx context.Context, name string, content []byte) (string, error)
}

// EventPublisher publishes engagement events to the message broker
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// CredentialVerifier checks login credentials against the account store
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.Identity, error)
}

// Upload is one file attached to a question
type Upload struct {
	Name    string
	Content []byte
}
