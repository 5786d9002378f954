package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadCreated     = "lead.created"
	EventMessageReceived = "message.received"
)

// CRMEventPayload é o evento que o ingest publica depois do commit.
// Consumidores (notificador, analytics) ficam fora do caminho do request.
type CRMEventPayload struct {
	Event     string    `json:"event"`
	LeadID    string    `json:"lead_id"`
	IGID      string    `json:"ig_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) PublishEvent(ctx context.Context, payload CRMEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
