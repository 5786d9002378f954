package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/directorcrm/instagram-crm/internal/entity"
)

type TemplateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) Create(ctx context.Context, tpl *entity.MessageTemplate) error {
	query := `
		INSERT INTO message_templates (id, name, content, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := querierFrom(ctx, r.DB).ExecContext(ctx, query,
		tpl.ID,
		tpl.Name,
		tpl.Content,
		tpl.Category,
		tpl.CreatedAt,
		tpl.UpdatedAt,
	)
	return err
}

func (r *TemplateRepository) List(ctx context.Context) ([]*entity.MessageTemplate, error) {
	query := `
		SELECT id, name, content, category, created_at, updated_at
		FROM message_templates
		ORDER BY created_at DESC
	`

	rows, err := querierFrom(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*entity.MessageTemplate{}
	for rows.Next() {
		var tpl entity.MessageTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Content, &tpl.Category, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, &tpl)
	}
	return templates, rows.Err()
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*entity.MessageTemplate, error) {
	query := `
		SELECT id, name, content, category, created_at, updated_at
		FROM message_templates
		WHERE id = $1
	`

	var tpl entity.MessageTemplate
	err := querierFrom(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(
		&tpl.ID, &tpl.Name, &tpl.Content, &tpl.Category, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *TemplateRepository) Update(ctx context.Context, tpl *entity.MessageTemplate) error {
	tpl.UpdatedAt = time.Now()
	res, err := querierFrom(ctx, r.DB).ExecContext(ctx,
		`UPDATE message_templates SET name = $1, content = $2, category = $3, updated_at = $4 WHERE id = $5`,
		tpl.Name, tpl.Content, tpl.Category, tpl.UpdatedAt, tpl.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	res, err := querierFrom(ctx, r.DB).ExecContext(ctx,
		`DELETE FROM message_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrTemplateNotFound
	}
	return nil
}
