package database

import (
	"fmt"

	"tour-booking/logger"
	"tour-booking/models/log"
	"tour-booking/models/quote"
	"tour-booking/models/tour"
	"tour-booking/models/user"

	"gorm.io/gorm"
)

// RunMigrations migrates all models in dependency order, then adds the
// constraints and indexes AutoMigrate does not create.
func RunMigrations(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		return err
	}
	if err := createForeignKeyConstraints(db); err != nil {
		return err
	}
	return createIndexes(db)
}

// autoMigrate runs auto migration for all models
func autoMigrate(db *gorm.DB) error {
	stages := [][]interface{}{
		// Stage 1: accounts
		{&user.User{}, &user.OperatorProfile{}},
		// Stage 2: catalogue
		{&tour.Tour{}},
		// Stage 3: negotiation
		{&quote.QuoteRequest{}, &quote.QuoteMessage{}, &quote.QuoteStatusEvent{}},
		// Stage 4: logging
		{&log.Log{}},
	}

	for _, models := range stages {
		for _, model := range models {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %T: %w", model, err)
			}
		}
	}
	return nil
}

// createIndexes creates additional indexes for the listing queries
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_tours_operator_profile_id", "CREATE INDEX IF NOT EXISTS idx_tours_operator_profile_id ON tours(operator_profile_id)"},
		{"idx_quote_requests_user_created", "CREATE INDEX IF NOT EXISTS idx_quote_requests_user_created ON quote_requests(user_id, created_at DESC)"},
		{"idx_quote_requests_tour_created", "CREATE INDEX IF NOT EXISTS idx_quote_requests_tour_created ON quote_requests(tour_id, created_at DESC)"},
		{"idx_quote_requests_expiry", "CREATE INDEX IF NOT EXISTS idx_quote_requests_expiry ON quote_requests(quote_expires_at) WHERE status = 'quoted'"},
		{"idx_quote_messages_quote_created", "CREATE INDEX IF NOT EXISTS idx_quote_messages_quote_created ON quote_messages(quote_request_id, created_at, id)"},
		{"idx_quote_status_events_quote", "CREATE INDEX IF NOT EXISTS idx_quote_status_events_quote ON quote_status_events(quote_request_id, created_at)"},
		{"idx_logs_status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, index := range indexes {
		if err := db.Exec(index.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", index.name, err)
		}
	}
	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints(db *gorm.DB) error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_quote_requests_tour",
			sql: `ALTER TABLE quote_requests ADD CONSTRAINT fk_quote_requests_tour
				  FOREIGN KEY (tour_id) REFERENCES tours(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_quote_requests_user",
			sql: `ALTER TABLE quote_requests ADD CONSTRAINT fk_quote_requests_user
				  FOREIGN KEY (user_id) REFERENCES users(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_quote_messages_quote_request",
			sql: `ALTER TABLE quote_messages ADD CONSTRAINT fk_quote_messages_quote_request
				  FOREIGN KEY (quote_request_id) REFERENCES quote_requests(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_quote_status_events_quote_request",
			sql: `ALTER TABLE quote_status_events ADD CONSTRAINT fk_quote_status_events_quote_request
				  FOREIGN KEY (quote_request_id) REFERENCES quote_requests(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1 AND table_schema = current_schema()
			)
		`

		if err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error; err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if exists {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
			continue
		}
		if err := db.Exec(constraint.sql).Error; err != nil {
			logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
		} else {
			logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
		}
	}

	return nil
}
