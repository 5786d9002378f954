package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicateMessage = errors.New("mensagem duplicada para esse lead")

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Entidade: Message
// Timestamp é o horário do evento na plataforma, não o horário do insert.
// InstagramMessageID fica nil para mensagens outbound criadas localmente.
type Message struct {
	ID                 string    `json:"id"`
	LeadID             string    `json:"lead_id"`
	Text               string    `json:"text"`
	Timestamp          time.Time `json:"timestamp"`
	Direction          string    `json:"direction"`
	InstagramMessageID *string   `json:"instagram_message_id"`
}

func NewMessage(leadID, text, direction string, timestamp time.Time) *Message {
	return &Message{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Text:      text,
		Timestamp: timestamp,
		Direction: direction,
	}
}

type MessageRepositoryInterface interface {
	Insert(ctx context.Context, msg *Message) error
	// ListByLead retorna sempre em ordem de timestamp ascendente.
	ListByLead(ctx context.Context, leadID string) ([]*Message, error)
	ExistsByInstagramID(ctx context.Context, leadID, instagramMessageID string) (bool, error)
}
