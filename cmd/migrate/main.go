package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS team_documents CASCADE`,
		`DROP TABLE IF EXISTS team_calendar_events CASCADE`,
		`DROP TABLE IF EXISTS team_group_members CASCADE`,
		`DROP TABLE IF EXISTS team_groups CASCADE`,
		`DROP TABLE IF EXISTS team_members CASCADE`,
		`DROP TABLE IF EXISTS teams CASCADE`,
		`DROP TABLE IF EXISTS user_roles CASCADE`,
		`DROP TABLE IF EXISTS roles CASCADE`,
		`DROP TABLE IF EXISTS membership_requests CASCADE`,
		`DROP TABLE IF EXISTS church_members CASCADE`,
		`DROP TABLE IF EXISTS churches CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS churches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS church_members (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			church_id UUID NOT NULL REFERENCES churches(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(50) NOT NULL DEFAULT 'member',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(church_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS membership_requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			church_id UUID NOT NULL REFERENCES churches(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			message TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			church_id UUID NOT NULL REFERENCES churches(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			is_system_role BOOLEAN DEFAULT false,
			UNIQUE(church_id, name)
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,

		`CREATE TABLE IF NOT EXISTS teams (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			church_id UUID NOT NULL REFERENCES churches(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type VARCHAR(50) NOT NULL DEFAULT 'other',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS team_members (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(20) NOT NULL DEFAULT 'member',
			position VARCHAR(100),
			joined_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(team_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS team_groups (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS team_group_members (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			group_id UUID NOT NULL REFERENCES team_groups(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(20) NOT NULL DEFAULT 'member',
			position VARCHAR(100),
			joined_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(group_id, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS team_calendar_events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			date DATE NOT NULL,
			end_date DATE,
			is_all_day BOOLEAN NOT NULL DEFAULT false,
			start_time TIME,
			end_time TIME,
			group_id UUID REFERENCES team_groups(id) ON DELETE SET NULL,
			member_ids TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			CHECK (group_id IS NULL OR member_ids = '{}')
		)`,

		`CREATE TABLE IF NOT EXISTS team_documents (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			file_name VARCHAR(255) NOT NULL,
			file_size BIGINT NOT NULL DEFAULT 0,
			storage_path TEXT NOT NULL,
			event_id UUID REFERENCES team_calendar_events(id) ON DELETE SET NULL,
			uploaded_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_church_members_church_id ON church_members(church_id)`,
		`CREATE INDEX IF NOT EXISTS idx_membership_requests_church_id ON membership_requests(church_id)`,
		`CREATE INDEX IF NOT EXISTS idx_teams_church_id ON teams(church_id)`,
		`CREATE INDEX IF NOT EXISTS idx_team_members_team_id ON team_members(team_id)`,
		`CREATE INDEX IF NOT EXISTS idx_team_groups_team_id ON team_groups(team_id)`,
		`CREATE INDEX IF NOT EXISTS idx_team_group_members_group_id ON team_group_members(group_id)`,
		`CREATE INDEX IF NOT EXISTS idx_calendar_events_team_date ON team_calendar_events(team_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_team_documents_team_id ON team_documents(team_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	query := `
		WITH church AS (
			INSERT INTO churches (name) VALUES ('Grace Community Church')
			RETURNING id
		)
		INSERT INTO roles (church_id, name, description, is_system_role)
		SELECT id, r.name, r.description, true
		FROM church,
		(VALUES
			('Admin', 'Full administrative access'),
			('Pastor', 'Pastoral oversight'),
			('Leader', 'Ministry leadership'),
			('Member', 'Standard membership')
		) AS r(name, description)
	`

	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to seed church and roles: %w", err)
	}

	fmt.Println("  Seeded 1 church with 4 system roles")
	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
