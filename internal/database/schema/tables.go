// Package schema holds the table definitions applied at startup.
package schema

// TableDefinitions contains the statements creating the database tables, in dependency order
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL,
		html_content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS recipients (
		email_address VARCHAR(254) NOT NULL,
		campaign_id BIGINT NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL DEFAULT '',
		added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (email_address, campaign_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_created_at ON templates(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_campaigns_created_at ON campaigns(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_recipients_campaign_id ON recipients(campaign_id)`,
}

// TableNames lists the tables in creation order
var TableNames = []string{
	"templates",
	"campaigns",
	"recipients",
}
