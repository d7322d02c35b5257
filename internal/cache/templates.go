// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// templates.go provides a Valkey-backed read-through cache for the template
// catalog. Templates are global and change only on deploy, so every request
// that needs template colors or a strategy can be served without a query.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"infogen/internal/models"
)

const (
	// catalogKeyPrefix namespaces every catalog key in Valkey.
	catalogKeyPrefix = "template:"

	// templateListKey holds the full ordered catalog.
	templateListKey = catalogKeyPrefix + "list"

	// templateKeyPrefix prefixes single templates, keyed by id. It never
	// overlaps templateListKey whatever the id.
	templateKeyPrefix = catalogKeyPrefix + "id:"

	// DefaultTemplateTTL is how long catalog entries stay cached.
	DefaultTemplateTTL = 10 * time.Minute
)

// TemplateSource loads templates from the system of record.
type TemplateSource interface {
	List(ctx context.Context) ([]models.Template, error)
	FindByID(ctx context.Context, id string) (*models.Template, error)
}

// TemplateCatalog caches a TemplateSource in Valkey. Cache errors are logged
// and the source is consulted instead, so a Valkey outage degrades to
// uncached reads. A nil client disables caching.
type TemplateCatalog struct {
	source TemplateSource
	client *redis.Client
	ttl    time.Duration
}

// NewTemplateCatalog creates a catalog cache in front of source.
func NewTemplateCatalog(source TemplateSource, client *redis.Client, ttl time.Duration) *TemplateCatalog {
	if ttl == 0 {
		ttl = DefaultTemplateTTL
	}
	return &TemplateCatalog{source: source, client: client, ttl: ttl}
}

// List returns the whole catalog ordered by category and name.
func (c *TemplateCatalog) List(ctx context.Context) ([]models.Template, error) {
	var cached []models.Template
	if c.get(ctx, templateListKey, &cached) {
		return cached, nil
	}

	templates, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, templateListKey, templates)
	return templates, nil
}

// FindByID returns one template, or nil if the id is unknown. Misses are not
// cached so a template seeded later becomes visible immediately.
func (c *TemplateCatalog) FindByID(ctx context.Context, id string) (*models.Template, error) {
	var cached models.Template
	if c.get(ctx, templateKeyPrefix+id, &cached) {
		return &cached, nil
	}

	t, err := c.source.FindByID(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	c.set(ctx, templateKeyPrefix+id, t)
	return t, nil
}

// Invalidate removes every cached catalog entry by scanning for the prefix.
func (c *TemplateCatalog) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}

	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, catalogKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("template cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("template cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("template cache cleared", "deleted", deleted)
	}
}

func (c *TemplateCatalog) get(ctx context.Context, key string, dst any) bool {
	if c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Warn("template cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("template cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("template cache hit", "key", key)
	return true
}

func (c *TemplateCatalog) set(ctx context.Context, key string, v any) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("template cache encode error", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("template cache set error", "key", key, "error", err)
	}
}
