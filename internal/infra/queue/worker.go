package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier avisa o operador sobre atividade nova no CRM.
type LeadNotifier interface {
	SendLeadAlert(event, igID, text string) error
}

// Worker consome os eventos do CRM e dispara a notificação por email.
type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload CRMEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			if err := w.process(payload); err != nil {
				log.Printf("❌ [WORKER] Falha ao notificar: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de eventos aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) process(payload CRMEventPayload) error {
	switch payload.Event {
	case EventLeadCreated:
		log.Printf("🆕 [WORKER] Lead novo: %s", payload.IGID)
		if w.Notifier != nil {
			return w.Notifier.SendLeadAlert(payload.Event, payload.IGID, payload.Text)
		}
		return nil

	case EventMessageReceived:
		// Mensagem de lead já conhecido: só loga, sem alerta.
		log.Printf("💬 [WORKER] Mensagem de %s", payload.IGID)
		return nil

	default:
		log.Printf("⚠️ [WORKER] Evento desconhecido: %s. Apenas logando.", payload.Event)
		return nil
	}
}
