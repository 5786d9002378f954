package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/directorcrm/instagram-crm/internal/usecase"
)

const webhookBody = `{
	"object": "instagram",
	"entry": [{
		"id": "page-1",
		"time": 1000,
		"messaging": [{
			"sender": {"id": "u1"},
			"recipient": {"id": "operator-id"},
			"timestamp": 1000,
			"message": {"mid": "mid.1", "text": "hi"}
		}]
	}]
}`

func TestWebhookVerifyEchoesChallenge(t *testing.T) {
	h := NewWebhookHandler(new(MockIngestor), "director_verify", "")

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=director_verify&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()

	h.HandleVerify(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", rec.Body.String())
}

func TestWebhookVerifyWrongTokenForbidden(t *testing.T) {
	h := NewWebhookHandler(new(MockIngestor), "director_verify", "")

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=errado&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()

	h.HandleVerify(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookEventDispatchesToIngest(t *testing.T) {
	ingest := new(MockIngestor)
	ingest.On("Execute", mock.Anything, mock.MatchedBy(func(evt usecase.InboundEvent) bool {
		return evt.SenderID == "u1" &&
			evt.Text == "hi" &&
			evt.MessageID == "mid.1" &&
			evt.Timestamp.Equal(time.UnixMilli(1000))
	})).Return(nil)

	h := NewWebhookHandler(ingest, "director_verify", "")

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(webhookBody))
	rec := httptest.NewRecorder()

	h.HandleEvent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	ingest.AssertExpectations(t)
}

func TestWebhookEventAlways200OnProcessingError(t *testing.T) {
	ingest := new(MockIngestor)
	ingest.On("Execute", mock.Anything, mock.Anything).Return(errors.New("db down"))

	h := NewWebhookHandler(ingest, "director_verify", "")

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(webhookBody))
	rec := httptest.NewRecorder()

	h.HandleEvent(rec, req)

	// Non-2xx faria a Meta reentregar em loop.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookEventMalformedPayloadIsAcked(t *testing.T) {
	ingest := new(MockIngestor)
	h := NewWebhookHandler(ingest, "director_verify", "")

	for _, body := range []string{
		`not json`,
		`{}`,
		`{"entry": []}`,
		`{"entry": [{"messaging": []}]}`,
		`{"entry": [{"messaging": [{"sender": {"id": ""}, "message": {"text": "x"}}]}]}`,
		`{"entry": [{"messaging": [{"sender": {"id": "u1"}}]}]}`,
		`{"entry": [{"messaging": [{"sender": {"id": "u1"}, "message": {"text": "x", "is_echo": true}}]}]}`,
	} {
		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleEvent(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "payload: %s", body)
	}

	ingest.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestWebhookEventSignatureCheck(t *testing.T) {
	ingest := new(MockIngestor)
	ingest.On("Execute", mock.Anything, mock.Anything).Return(nil)

	h := NewWebhookHandler(ingest, "director_verify", "app-secret")

	// Sem assinatura: 403.
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(webhookBody))
	rec := httptest.NewRecorder()
	h.HandleEvent(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Assinatura correta: processa.
	mac := hmac.New(sha256.New, []byte("app-secret"))
	mac.Write([]byte(webhookBody))
	sig := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	req = httptest.NewRequest("POST", "/webhook", strings.NewReader(webhookBody))
	req.Header.Set("X-Hub-Signature-256", sig)
	rec = httptest.NewRecorder()
	h.HandleEvent(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	ingest.AssertCalled(t, "Execute", mock.Anything, mock.Anything)
}
