package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// Column sets returned by the repository queries, in select order
var (
	TemplateColumns  = []string{"id", "name", "subject", "html_content", "created_at", "updated_at"}
	CampaignColumns  = []string{"id", "name", "created_at", "updated_at"}
	RecipientColumns = []string{"email_address", "campaign_id", "name", "added_at"}
)

// SetupMockDB creates a mock database connection for testing
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// TemplateRows starts an empty result set shaped like the templates table
func TemplateRows() *sqlmock.Rows {
	return sqlmock.NewRows(TemplateColumns)
}

// CampaignRows starts an empty result set shaped like the campaigns table
func CampaignRows() *sqlmock.Rows {
	return sqlmock.NewRows(CampaignColumns)
}

// RecipientRows starts an empty result set shaped like the recipients table
func RecipientRows() *sqlmock.Rows {
	return sqlmock.NewRows(RecipientColumns)
}
