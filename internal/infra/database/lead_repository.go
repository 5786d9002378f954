package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/directorcrm/instagram-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert é insert-if-absent: entregas concorrentes do webhook para o mesmo
// ig_id batem no UNIQUE e viram no-op, nunca duas linhas.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, ig_id, first_seen, status, is_own_account, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (ig_id) DO NOTHING
	`

	_, err := querierFrom(ctx, r.DB).ExecContext(ctx, query,
		lead.ID,
		lead.IGID,
		lead.FirstSeen,
		lead.Status,
		lead.IsOwnAccount,
	)

	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Corrida entre o ON CONFLICT e outro insert: já existe, tudo bem.
			return nil
		}
		log.Printf("❌ Erro no upsert de lead %s: %v", lead.IGID, err)
		return err
	}

	return nil
}

const leadColumns = `id, ig_id, username, full_name, first_seen, status, is_own_account, updated_at`

func (r *LeadRepository) FindByIGID(ctx context.Context, igID string) (*entity.Lead, error) {
	row := querierFrom(ctx, r.DB).QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE ig_id = $1`, igID)
	return scanLead(row)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := querierFrom(ctx, r.DB).QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	return scanLead(row)
}

// List exclui a conta do próprio operador e ordena do contato mais recente
// para o mais antigo. statusFilter vazio ou "all" não filtra.
func (r *LeadRepository) List(ctx context.Context, statusFilter string) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE is_own_account = FALSE`
	args := []any{}

	if statusFilter != "" && statusFilter != "all" {
		query += ` AND status = $1`
		args = append(args, statusFilter)
	}
	query += ` ORDER BY first_seen DESC`

	rows, err := querierFrom(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLeadRows(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	res, err := querierFrom(ctx, r.DB).ExecContext(ctx,
		`UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

// UpdateProfile grava username/full_name vindos do Graph API.
func (r *LeadRepository) UpdateProfile(ctx context.Context, igID, username, fullName string) error {
	_, err := querierFrom(ctx, r.DB).ExecContext(ctx,
		`UPDATE leads SET username = $1, full_name = $2 WHERE ig_id = $3`,
		username, nullString(fullName), igID,
	)
	return err
}

func scanLead(row *sql.Row) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.IGID,
		&lead.Username,
		&lead.FullName,
		&lead.FirstSeen,
		&lead.Status,
		&lead.IsOwnAccount,
		&lead.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func scanLeadRows(rows *sql.Rows) (*entity.Lead, error) {
	var lead entity.Lead
	err := rows.Scan(
		&lead.ID,
		&lead.IGID,
		&lead.Username,
		&lead.FullName,
		&lead.FirstSeen,
		&lead.Status,
		&lead.IsOwnAccount,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
