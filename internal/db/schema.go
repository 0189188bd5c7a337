package db

import "context"

// Migrate applies the minimal schema needed for operation. Statements are
// idempotent so startup can always run them.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cases (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			agent_id TEXT NULL,
			resolution TEXT NOT NULL DEFAULT '',
			resolution_status TEXT NOT NULL DEFAULT 'unresolved',
			resolution_date TIMESTAMPTZ NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_closed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_cases_status ON cases(status);`,
		`CREATE INDEX IF NOT EXISTS idx_cases_priority ON cases(priority);`,
		`CREATE INDEX IF NOT EXISTS idx_cases_type ON cases(type);`,
		`CREATE INDEX IF NOT EXISTS idx_cases_customer ON cases(customer_id);`,
		`CREATE INDEX IF NOT EXISTS idx_cases_agent ON cases(agent_id);`,
		`CREATE INDEX IF NOT EXISTS idx_cases_updated_at ON cases(updated_at);`,
		`CREATE TABLE IF NOT EXISTS crypto_loss_reports (
			case_id TEXT PRIMARY KEY REFERENCES cases(id) ON DELETE CASCADE,
			amount_lost NUMERIC(20,8) NOT NULL,
			usdt_value NUMERIC(20,8) NOT NULL,
			txid TEXT NOT NULL,
			sender_wallet TEXT NOT NULL,
			receiver_wallet TEXT NOT NULL,
			platform_used TEXT NOT NULL DEFAULT '',
			blockchain_hash TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL DEFAULT '',
			exchange_info TEXT NOT NULL DEFAULT '',
			wallet_backup TEXT NOT NULL DEFAULT '',
			crypto_type TEXT NOT NULL,
			transaction_datetime TIMESTAMPTZ NOT NULL,
			loss_description TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS social_media_recoveries (
			case_id TEXT PRIMARY KEY REFERENCES cases(id) ON DELETE CASCADE,
			platform TEXT NOT NULL,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL,
			profile_url TEXT NOT NULL DEFAULT '',
			profile_pic TEXT NOT NULL DEFAULT '',
			account_creation_date TIMESTAMPTZ NULL,
			last_access_date TIMESTAMPTZ NULL
		);`,
		`CREATE TABLE IF NOT EXISTS money_recovery_reports (
			case_id TEXT PRIMARY KEY REFERENCES cases(id) ON DELETE CASCADE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT NOT NULL,
			identification TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			ref_number TEXT NOT NULL DEFAULT '',
			bank TEXT NOT NULL,
			iban TEXT NOT NULL,
			datetime TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS supporting_documents (
			id TEXT PRIMARY KEY,
			case_id TEXT NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
			file_url TEXT NOT NULL,
			file_name TEXT NOT NULL,
			file_size BIGINT NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			uploaded_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_case ON supporting_documents(case_id);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON supporting_documents(uploaded_at);`,
	}

	for _, stmt := range stmts {
		if _, err := s.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
