package instagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Client fala com o Graph API da Meta. Token e base URL são injetados na
// construção; nada de os.Getenv espalhado pelo código.
type Client struct {
	accessToken string
	baseURL     string
}

func NewClient(accessToken, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://graph.facebook.com/v18.0"
	}
	return &Client{
		accessToken: accessToken,
		baseURL:     baseURL,
	}
}

// GetProfile busca username e nome de exibição de um usuário.
// Conta privada/desativada volta Profile com Username vazio, sem erro.
func (c *Client) GetProfile(igID string) (*Profile, error) {
	reqURL := fmt.Sprintf("%s/%s?fields=username,name&access_token=%s",
		c.baseURL, igID, url.QueryEscape(c.accessToken))

	resp, err := http.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar perfil: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("erro ao parsear perfil: %w", err)
	}

	// O Graph API devolve 400 para contas que não expõem perfil; tratamos
	// como perfil vazio, não como falha.
	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ Instagram: perfil de %s indisponível (status %d)", igID, resp.StatusCode)
		return &Profile{}, nil
	}

	return &profile, nil
}

// SendMessage envia um texto via Direct e retorna o message_id remoto.
func (c *Client) SendMessage(recipientID, text string) (string, error) {
	var reqBody sendMessageRequest
	reqBody.Recipient.ID = recipientID
	reqBody.Message.Text = text

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/me/messages?access_token=%s", c.baseURL, url.QueryEscape(c.accessToken))
	resp, err := http.Post(reqURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("instagram inacessível: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result sendMessageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("erro ao parsear resposta do envio: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("instagram: %s (code %d)", result.Error.Message, result.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("instagram api error: %d - %s", resp.StatusCode, string(body))
	}

	return result.MessageID, nil
}

// FetchConversation busca o transcript remoto da conversa com igID,
// na ordem em que o Graph API devolve.
func (c *Client) FetchConversation(igID string) ([]RemoteMessage, error) {
	reqURL := fmt.Sprintf(
		"%s/me/conversations?platform=instagram&user_id=%s&fields=messages%s&access_token=%s",
		c.baseURL, url.QueryEscape(igID),
		url.QueryEscape("{id,message,created_time,from}"),
		url.QueryEscape(c.accessToken),
	)

	resp, err := http.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conversa: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result conversationsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("erro ao parsear conversa: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("instagram: %s (code %d)", result.Error.Message, result.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("instagram api error: %d - %s", resp.StatusCode, string(body))
	}

	var messages []RemoteMessage
	for _, conv := range result.Data {
		for _, m := range conv.Messages.Data {
			messages = append(messages, RemoteMessage{
				ID:          m.ID,
				Text:        m.Message,
				FromID:      m.From.ID,
				CreatedTime: parseGraphTime(m.CreatedTime),
			})
		}
	}

	return messages, nil
}

// parseGraphTime aceita os dois formatos que o Graph API costuma devolver
// ("2024-01-02T15:04:05+0000" e RFC3339).
func parseGraphTime(value string) time.Time {
	if t, err := time.Parse("2006-01-02T15:04:05-0700", value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	log.Printf("⚠️ Instagram: created_time inválido %q, usando agora", value)
	return time.Now()
}
