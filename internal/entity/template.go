package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrTemplateNotFound = errors.New("template não encontrado")

type MessageTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMessageTemplate(name, content, category string) (*MessageTemplate, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if content == "" {
		return nil, errors.New("content is required")
	}

	now := time.Now()
	return &MessageTemplate{
		ID:        uuid.New().String(),
		Name:      name,
		Content:   content,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type TemplateRepositoryInterface interface {
	Create(ctx context.Context, tpl *MessageTemplate) error
	List(ctx context.Context) ([]*MessageTemplate, error)
	FindByID(ctx context.Context, id string) (*MessageTemplate, error)
	Update(ctx context.Context, tpl *MessageTemplate) error
	Delete(ctx context.Context, id string) error
}
