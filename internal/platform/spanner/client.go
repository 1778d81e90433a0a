// Package spanner provides Cloud Spanner client initialization and
// transaction scopes backing the store-level atomicity the modules rely on.
package spanner

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/spanner"
)

// Config holds Spanner connection configuration.
type Config struct {
	ProjectID  string
	InstanceID string
	DatabaseID string
}

// ConfigFromEnv builds a Config from SPANNER_PROJECT_ID, SPANNER_INSTANCE_ID
// and SPANNER_DATABASE_ID, with local-development defaults.
func ConfigFromEnv() Config {
	return Config{
		ProjectID:  envOr("SPANNER_PROJECT_ID", "local-project"),
		InstanceID: envOr("SPANNER_INSTANCE_ID", "local-instance"),
		DatabaseID: envOr("SPANNER_DATABASE_ID", "bookstore-db"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DSN returns the Spanner database connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s",
		c.ProjectID, c.InstanceID, c.DatabaseID)
}

// NewClient creates a new Spanner client from config.
// The caller is responsible for closing the client when done.
func NewClient(ctx context.Context, cfg Config) (*spanner.Client, error) {
	client, err := spanner.NewClient(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create spanner client: %w", err)
	}
	return client, nil
}
