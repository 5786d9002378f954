package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/directorcrm/instagram-crm/internal/entity"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Insert(ctx context.Context, msg *entity.Message) error {
	query := `
		INSERT INTO messages (id, lead_id, text, timestamp, direction, instagram_message_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := querierFrom(ctx, r.DB).ExecContext(ctx, query,
		msg.ID,
		msg.LeadID,
		msg.Text,
		msg.Timestamp,
		msg.Direction,
		msg.InstagramMessageID,
	)

	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Redelivery do webhook ou sync concorrente: o índice único em
			// (lead_id, instagram_message_id) segurou a duplicata.
			return entity.ErrDuplicateMessage
		}
		return err
	}

	return nil
}

func (r *MessageRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Message, error) {
	query := `
		SELECT id, lead_id, text, timestamp, direction, instagram_message_id
		FROM messages
		WHERE lead_id = $1
		ORDER BY timestamp
	`

	rows, err := querierFrom(ctx, r.DB).QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*entity.Message{}
	for rows.Next() {
		var msg entity.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.LeadID,
			&msg.Text,
			&msg.Timestamp,
			&msg.Direction,
			&msg.InstagramMessageID,
		); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

// ExistsByInstagramID verifica se a mensagem remota já foi importada.
func (r *MessageRepository) ExistsByInstagramID(ctx context.Context, leadID, instagramMessageID string) (bool, error) {
	query := `
		SELECT 1 FROM messages
		WHERE lead_id = $1 AND instagram_message_id = $2
		LIMIT 1
	`

	var tmp int
	err := querierFrom(ctx, r.DB).QueryRowContext(ctx, query, leadID, instagramMessageID).Scan(&tmp)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
