package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/directorcrm/instagram-crm/internal/entity"
	"github.com/directorcrm/instagram-crm/internal/infra/queue"
)

// InboundEvent é um evento de mensagem já extraído do envelope do webhook.
type InboundEvent struct {
	SenderID  string
	Text      string
	MessageID string
	Timestamp time.Time
}

// IngestMessageUseCase processa um evento inbound do Direct:
// upsert do lead, enriquecimento condicional do perfil e append da
// mensagem — tudo dentro de uma única transação.
type IngestMessageUseCase struct {
	Leads        entity.LeadRepositoryInterface
	Messages     entity.MessageRepositoryInterface
	Enricher     *ProfileEnricher
	Tx           TxManager
	Events       EventPublisherInterface // opcional, pode ser nil
	OwnAccountID string
}

func NewIngestMessageUseCase(
	leads entity.LeadRepositoryInterface,
	messages entity.MessageRepositoryInterface,
	enricher *ProfileEnricher,
	tx TxManager,
	events EventPublisherInterface,
	ownAccountID string,
) *IngestMessageUseCase {
	return &IngestMessageUseCase{
		Leads:        leads,
		Messages:     messages,
		Enricher:     enricher,
		Tx:           tx,
		Events:       events,
		OwnAccountID: ownAccountID,
	}
}

func (uc *IngestMessageUseCase) Execute(ctx context.Context, evt InboundEvent) error {
	if evt.SenderID == "" {
		// Payload sem sender endereçável: ack e segue a vida.
		return nil
	}

	// Mensagem da própria conta do operador — ignorar evita loop de echo.
	if uc.OwnAccountID != "" && evt.SenderID == uc.OwnAccountID {
		log.Printf("↩️ Ignorando mensagem da própria conta (%s)", evt.SenderID)
		return nil
	}

	var leadID string
	isNewLead := false

	err := uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		// 1. Upsert do lead (insert-if-absent)
		lead := entity.NewLead(evt.SenderID, evt.Timestamp)
		if err := uc.Leads.Upsert(ctx, lead); err != nil {
			return fmt.Errorf("erro no upsert do lead: %w", err)
		}

		// 2. Enriquecer perfil se o username ainda não veio
		if err := uc.Enricher.EnsureProfile(ctx, evt.SenderID); err != nil {
			return fmt.Errorf("erro ao enriquecer perfil: %w", err)
		}

		// 3. Resolver o id surrogate (depois do upsert tem que existir)
		stored, err := uc.Leads.FindByIGID(ctx, evt.SenderID)
		if err != nil {
			return fmt.Errorf("lead sumiu depois do upsert: %w", err)
		}
		leadID = stored.ID
		isNewLead = stored.ID == lead.ID

		// 4. Gravar a mensagem inbound com o timestamp do evento
		msg := entity.NewMessage(stored.ID, evt.Text, entity.DirectionInbound, evt.Timestamp)
		if evt.MessageID != "" {
			msg.InstagramMessageID = &evt.MessageID
		}
		if err := uc.Messages.Insert(ctx, msg); err != nil {
			if errors.Is(err, entity.ErrDuplicateMessage) {
				// Redelivery da Meta: já temos essa mensagem.
				log.Printf("↩️ Mensagem %s já registrada, ignorando redelivery", evt.MessageID)
				return nil
			}
			return fmt.Errorf("erro ao gravar mensagem: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("✔ Mensagem registrada de %s (lead %s)", evt.SenderID, leadID)

	// Evento best-effort para a fila: falha aqui não derruba o ingest.
	if uc.Events != nil {
		eventType := queue.EventMessageReceived
		if isNewLead {
			eventType = queue.EventLeadCreated
		}
		payload := queue.CRMEventPayload{
			Event:     eventType,
			LeadID:    leadID,
			IGID:      evt.SenderID,
			Text:      evt.Text,
			Timestamp: evt.Timestamp,
		}
		if err := uc.Events.PublishEvent(ctx, payload); err != nil {
			log.Printf("⚠️ Falha ao publicar evento na fila: %v", err)
		}
	}

	return nil
}
