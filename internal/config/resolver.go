package config

import (
	"context"
	"path/filepath"
	"sync"
)

// resolverKey is the context key for ConfigResolver
type resolverKey struct{}

// ConfigResolver provides lazy per-directory config resolution with caching.
// It loads and merges .inkwell.toml files with the global config on demand.
type ConfigResolver struct {
	global *Config

	mu    sync.Mutex
	cache map[string]*Config // dir -> merged config
}

// NewResolver creates a new ConfigResolver backed by the given global config.
func NewResolver(global *Config) *ConfigResolver {
	return &ConfigResolver{
		global: global,
		cache:  make(map[string]*Config),
	}
}

// ConfigForDir returns the effective config for a directory, merging any
// .inkwell.toml found there with the global config. Results are cached per
// cleaned path.
func (r *ConfigResolver) ConfigForDir(dir string) (*Config, error) {
	dir = filepath.Clean(dir)

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[dir]; ok {
		return cached, nil
	}

	local, err := LoadLocal(dir)
	if err != nil {
		return nil, err
	}

	merged := MergeLocal(r.global, local)
	r.cache[dir] = merged
	return merged, nil
}

// Global returns the global config (without any local overrides).
func (r *ConfigResolver) Global() *Config {
	return r.global
}

// WithResolver returns a new context with the ConfigResolver stored in it.
func WithResolver(ctx context.Context, r *ConfigResolver) context.Context {
	return context.WithValue(ctx, resolverKey{}, r)
}

// ResolverFromContext returns the ConfigResolver from context.
// Returns nil if no resolver is stored.
func ResolverFromContext(ctx context.Context) *ConfigResolver {
	if r, ok := ctx.Value(resolverKey{}).(*ConfigResolver); ok {
		return r
	}
	return nil
}
