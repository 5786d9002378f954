package usecase

import (
	"context"

	"github.com/directorcrm/instagram-crm/internal/infra/integration/instagram"
	"github.com/directorcrm/instagram-crm/internal/infra/queue"
)

// InstagramAPI é o contrato com o Graph API (perfil, envio, transcript).
type InstagramAPI interface {
	GetProfile(igID string) (*instagram.Profile, error)
	SendMessage(recipientID, text string) (string, error)
	FetchConversation(igID string) ([]instagram.RemoteMessage, error)
}

// TxManager delimita a fronteira transacional do ingest.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisherInterface interface {
	PublishEvent(ctx context.Context, payload queue.CRMEventPayload) error
}
