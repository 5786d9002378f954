package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/directorcrm/instagram-crm/internal/entity"
)

type SendMessageInput struct {
	LeadID string
	Text   string
}

type SendMessageOutput struct {
	Message        *entity.Message `json:"message"`
	InstagramSent  bool            `json:"instagram_sent"`
	InstagramError *string         `json:"instagram_error"`
}

// SendMessageUseCase envia um texto via Graph API e SEMPRE grava a
// mensagem outbound localmente — o registro "tentamos dizer X" tem que
// sobreviver a uma queda do Instagram. O resultado do relay volta como
// metadado na resposta, nunca decide persistência.
type SendMessageUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Messages  entity.MessageRepositoryInterface
	Instagram InstagramAPI
}

func NewSendMessageUseCase(
	leads entity.LeadRepositoryInterface,
	messages entity.MessageRepositoryInterface,
	ig InstagramAPI,
) *SendMessageUseCase {
	return &SendMessageUseCase{Leads: leads, Messages: messages, Instagram: ig}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, input SendMessageInput) (*SendMessageOutput, error) {
	if input.Text == "" {
		return nil, ValidationError{"message", "is required"}
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}

	var relayErr *RelayError
	remoteID, sendErr := uc.Instagram.SendMessage(lead.IGID, input.Text)
	if sendErr != nil {
		relayErr = &RelayError{Detail: sendErr.Error()}
		log.Printf("❌ Relay falhou para %s: %v", lead.IGID, sendErr)
	} else {
		log.Printf("✅ Mensagem enviada para %s (mid %s)", lead.IGID, remoteID)
	}

	// Persistência incondicional. InstagramMessageID fica nil: a origem é
	// local, não o transcript remoto.
	msg := entity.NewMessage(lead.ID, input.Text, entity.DirectionOutbound, time.Now())
	if err := uc.Messages.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("erro ao gravar mensagem outbound: %w", err)
	}

	output := &SendMessageOutput{
		Message:       msg,
		InstagramSent: relayErr == nil,
	}
	if relayErr != nil {
		detail := relayErr.Detail
		output.InstagramError = &detail
	}
	return output, nil
}
