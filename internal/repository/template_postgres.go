package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mailforge/mailforge/internal/domain"
)

var templateColumns = []string{"id", "name", "subject", "html_content", "created_at", "updated_at"}

type templateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new PostgreSQL template repository
func NewTemplateRepository(db *sql.DB) domain.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) CreateTemplate(ctx context.Context, template *domain.Template) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Insert("templates").
		Columns("name", "subject", "html_content", "created_at", "updated_at").
		Values(template.Name, template.Subject, template.HTMLContent, template.CreatedAt, template.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&template.ID); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) GetTemplateByID(ctx context.Context, id int64) (*domain.Template, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select(templateColumns...).
		From("templates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	template, err := scanTemplate(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrTemplateNotFound{Message: "Template not found"}
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

// ListTemplates returns every template, newest first
func (r *templateRepository) ListTemplates(ctx context.Context) ([]*domain.Template, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select(templateColumns...).
		From("templates").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*domain.Template, 0)
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}

	return templates, nil
}

func (r *templateRepository) DeleteTemplate(ctx context.Context, id int64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Delete("templates").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrTemplateNotFound{Message: "Template not found"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*domain.Template, error) {
	var t domain.Template
	if err := row.Scan(&t.ID, &t.Name, &t.Subject, &t.HTMLContent, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
