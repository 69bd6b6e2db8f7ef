package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS site_settings (
		key VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// id is the subject of the federated identity provider
	`CREATE TABLE IF NOT EXISTS admin_profiles (
		id VARCHAR(255) PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		display_name VARCHAR(255),
		role VARCHAR(50) NOT NULL DEFAULT 'admin',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_name = 'admin_profiles' AND constraint_name = 'admin_profiles_role_check'
		) THEN
			ALTER TABLE admin_profiles ADD CONSTRAINT admin_profiles_role_check
				CHECK (role IN ('admin', 'super_admin'));
		END IF;
	END $$`,

	`CREATE INDEX IF NOT EXISTS idx_admin_profiles_email ON admin_profiles(email)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
