package store

import (
	"fmt"

	"github.com/akshaytechonsy/postdeck/internal/config"
	"github.com/akshaytechonsy/postdeck/internal/domain"
)

// New selects the store and job runner implementations from config.
func New(cfg *config.Config) (domain.Store, domain.JobRunner, error) {
	switch cfg.Store.Mode {
	case "supabase", "":
		s := NewSupabaseStore(cfg.Store.URL, cfg.Store.AnonKey, cfg.Store.Bucket)
		job := NewEdgeFunction(cfg.Store.URL, cfg.Store.AnonKey, cfg.Store.GenerateFn)
		return WithCache(s, cfg.Store.CacheTTL), job, nil
	case "mock":
		m := NewMockStore()
		return m, m, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_MODE: %s (use 'supabase' or 'mock')", cfg.Store.Mode)
	}
}
