package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead não encontrado")

// Entidade: Lead
// A identidade real é o IGID (id do usuário no Instagram). O ID interno
// serve só como chave surrogate para as mensagens.
type Lead struct {
	ID           string     `json:"id"`
	IGID         string     `json:"ig_id"`
	Username     *string    `json:"username"`
	FullName     *string    `json:"full_name"`
	FirstSeen    time.Time  `json:"first_seen"`
	Status       LeadStatus `json:"status"`
	IsOwnAccount bool       `json:"is_own_account"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Factory
func NewLead(igID string, firstSeen time.Time) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		IGID:      igID,
		FirstSeen: firstSeen,
		Status:    StatusNew,
		UpdatedAt: time.Now(),
	}
}

type LeadRepositoryInterface interface {
	// Upsert insere o lead se ainda não existe (ON CONFLICT DO NOTHING).
	// Nunca sobrescreve um lead existente.
	Upsert(ctx context.Context, lead *Lead) error
	FindByIGID(ctx context.Context, igID string) (*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, statusFilter string) ([]*Lead, error)
	UpdateStatus(ctx context.Context, id string, status LeadStatus) error
	UpdateProfile(ctx context.Context, igID, username, fullName string) error
}
