package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mailforge/mailforge/internal/domain"
)

// recipientBatchSize bounds the rows of a single multi-row insert
const recipientBatchSize = 500

var recipientColumns = []string{"email_address", "campaign_id", "name", "added_at"}

type campaignRepository struct {
	db *sql.DB
}

// NewCampaignRepository creates a new PostgreSQL campaign repository
func NewCampaignRepository(db *sql.DB) domain.CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) CreateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Insert("campaigns").
		Columns("name", "created_at", "updated_at").
		Values(campaign.Name, campaign.CreatedAt, campaign.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&campaign.ID); err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *campaignRepository) GetCampaignByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select("id", "name", "created_at", "updated_at").
		From("campaigns").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var c domain.Campaign
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrCampaignNotFound{Message: "Campaign not found"}
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &c, nil
}

// ListCampaigns returns every campaign, newest first
func (r *campaignRepository) ListCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select("id", "name", "created_at", "updated_at").
		From("campaigns").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) UpdateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Update("campaigns").
		Set("name", campaign.Name).
		Set("updated_at", campaign.UpdatedAt).
		Where(sq.Eq{"id": campaign.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&campaign.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.ErrCampaignNotFound{Message: "Campaign not found"}
		}
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return nil
}

// DeleteCampaign removes the campaign. Recipients are removed by the foreign key cascade.
func (r *campaignRepository) DeleteCampaign(ctx context.Context, id int64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Delete("campaigns").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrCampaignNotFound{Message: "Campaign not found"}
	}
	return nil
}

// AddRecipients inserts recipients in batches inside one transaction.
// Pairs already present are skipped by the unique key.
func (r *campaignRepository) AddRecipients(ctx context.Context, recipients []*domain.Recipient) (int, error) {
	if len(recipients) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	created := 0

	for start := 0; start < len(recipients); start += recipientBatchSize {
		end := start + recipientBatchSize
		if end > len(recipients) {
			end = len(recipients)
		}

		insert := psql.Insert("recipients").Columns(recipientColumns...)
		for _, rec := range recipients[start:end] {
			insert = insert.Values(rec.EmailAddress, rec.CampaignID, rec.Name, rec.AddedAt)
		}

		query, args, err := insert.Suffix("ON CONFLICT (email_address, campaign_id) DO NOTHING").ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert recipients: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get affected rows: %w", err)
		}
		created += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func (r *campaignRepository) ListRecipients(ctx context.Context, campaignID int64) ([]*domain.Recipient, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select(recipientColumns...).
		From("recipients").
		Where(sq.Eq{"campaign_id": campaignID}).
		OrderBy("added_at ASC", "email_address ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	defer rows.Close()

	recipients := make([]*domain.Recipient, 0)
	for rows.Next() {
		var rec domain.Recipient
		if err := rows.Scan(&rec.EmailAddress, &rec.CampaignID, &rec.Name, &rec.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipient rows: %w", err)
	}

	return recipients, nil
}

func (r *campaignRepository) UpdateRecipientName(ctx context.Context, campaignID int64, emailAddress string, name string) (*domain.Recipient, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Update("recipients").
		Set("name", name).
		Where(sq.Eq{"campaign_id": campaignID, "email_address": emailAddress}).
		Suffix("RETURNING email_address, campaign_id, name, added_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rec domain.Recipient
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&rec.EmailAddress, &rec.CampaignID, &rec.Name, &rec.AddedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrRecipientNotFound{Message: "Email not found"}
		}
		return nil, fmt.Errorf("failed to update recipient: %w", err)
	}
	return &rec, nil
}

func (r *campaignRepository) DeleteRecipient(ctx context.Context, campaignID int64, emailAddress string) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Delete("recipients").
		Where(sq.Eq{"campaign_id": campaignID, "email_address": emailAddress}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete recipient: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrRecipientNotFound{Message: "Email not found"}
	}
	return nil
}
