package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/directorcrm/instagram-crm/internal/infra/http/middleware"
	"github.com/directorcrm/instagram-crm/internal/infra/integration/instagram"
	"github.com/directorcrm/instagram-crm/internal/usecase"
)

type MessageIngestor interface {
	Execute(ctx context.Context, evt usecase.InboundEvent) error
}

type WebhookHandler struct {
	Ingest      MessageIngestor
	VerifyToken string
	AppSecret   string // opcional; quando vazio a assinatura não é checada
}

func NewWebhookHandler(ingest MessageIngestor, verifyToken, appSecret string) *WebhookHandler {
	return &WebhookHandler{
		Ingest:      ingest,
		VerifyToken: verifyToken,
		AppSecret:   appSecret,
	}
}

// HandleVerify responde o handshake de subscription da Meta.
func (h *WebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == h.VerifyToken {
		log.Println("✅ Webhook verificado")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	log.Printf("❌ Verificação de webhook recusada (mode=%s)", mode)
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// HandleEvent processa um evento de mensagem. Sempre responde 200 — um
// não-2xx faz a Meta reentregar em loop, então erro de processamento é
// logado e engolido.
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	defer r.Body.Close()

	if h.AppSecret != "" {
		if !h.verifySignature(body, r.Header.Get("X-Hub-Signature-256")) {
			log.Println("❌ Assinatura de webhook inválida")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	evt, ok := extractEvent(body)
	if !ok {
		// Payload sem evento de mensagem endereçável: ack e nada mais.
		middleware.RecordWebhookEvent("ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.Ingest.Execute(r.Context(), evt); err != nil {
		log.Printf("❌ Erro ao processar webhook: %v", err)
		middleware.RecordWebhookEvent("error")
	} else {
		middleware.RecordWebhookEvent("ok")
	}

	w.WriteHeader(http.StatusOK)
}

// extractEvent pega o único evento endereçável do envelope (entry[0],
// messaging[0]), descartando echoes da própria conta.
func extractEvent(body []byte) (usecase.InboundEvent, bool) {
	var payload instagram.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return usecase.InboundEvent{}, false
	}

	if len(payload.Entry) == 0 || len(payload.Entry[0].Messaging) == 0 {
		return usecase.InboundEvent{}, false
	}

	msg := payload.Entry[0].Messaging[0]
	if msg.Message == nil || msg.Sender.ID == "" || msg.Message.IsEcho {
		return usecase.InboundEvent{}, false
	}

	return usecase.InboundEvent{
		SenderID:  msg.Sender.ID,
		Text:      msg.Message.Text,
		MessageID: msg.Message.Mid,
		Timestamp: time.UnixMilli(msg.Timestamp),
	}, true
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if len(signature) < 8 || signature[:7] != "sha256=" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.AppSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature[7:]), []byte(expected))
}
