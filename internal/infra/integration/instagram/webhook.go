package instagram

// WebhookPayload é o envelope que a Meta entrega no POST /webhook.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID        string `json:"id"`
		Time      int64  `json:"time"`
		Messaging []struct {
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
			Recipient struct {
				ID string `json:"id"`
			} `json:"recipient"`
			Timestamp int64 `json:"timestamp"` // epoch em milissegundos
			Message   *struct {
				Mid    string `json:"mid"`
				Text   string `json:"text"`
				IsEcho bool   `json:"is_echo,omitempty"`
			} `json:"message,omitempty"`
		} `json:"messaging"`
	} `json:"entry"`
}
