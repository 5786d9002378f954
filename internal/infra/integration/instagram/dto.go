package instagram

import "time"

// Profile é o retorno de GET /{ig-user-id}?fields=username,name.
// Contas privadas/desativadas voltam sem username.
type Profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

type sendMessageRequest struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

type sendMessageResponse struct {
	RecipientID string         `json:"recipient_id"`
	MessageID   string         `json:"message_id"`
	Error       *ErrorResponse `json:"error"`
}

// RemoteMessage é uma mensagem do transcript remoto, já normalizada.
type RemoteMessage struct {
	ID          string
	Text        string
	FromID      string
	CreatedTime time.Time
}

// conversationsResponse espelha GET /me/conversations?user_id=...&fields=messages{...}
type conversationsResponse struct {
	Data []struct {
		Messages struct {
			Data []struct {
				ID          string `json:"id"`
				Message     string `json:"message"`
				CreatedTime string `json:"created_time"`
				From        struct {
					ID string `json:"id"`
				} `json:"from"`
			} `json:"data"`
		} `json:"messages"`
	} `json:"data"`
	Error *ErrorResponse `json:"error"`
}
