// Package supabase backs the document and blob stores with a Supabase project:
// PostgREST for whole-document writes, a direct Postgres connection for merges,
// reads and the change feed, and Supabase Storage for uploaded files.
package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"

	"genai-space-backend/internal/config"
)

type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

// NewClient authenticates with the service role key; writes bypass row level
// security.
func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}
