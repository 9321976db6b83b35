// Package cache provides a fail-open key-value cache. Every backend degrades to a miss or
// no-op when its store is unavailable so callers can always proceed as if nothing was cached.
package cache

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTTL = 900 * time.Second
	ProfileTTL = 3600 * time.Second
)

// Cache is the contract shared by all backends.
type Cache interface {
	// Get decodes the cached value into dest and reports whether it was a hit.
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool
	// ClearByPrefix removes every key starting with prefix and returns how many were removed.
	ClearByPrefix(ctx context.Context, prefix string) int
}

type nopCache struct{}

// NewNop returns a cache that never stores anything.
func NewNop() Cache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string, any) bool                 { return false }
func (nopCache) Set(context.Context, string, any, time.Duration) bool { return false }
func (nopCache) Delete(context.Context, string) bool                   { return false }
func (nopCache) ClearByPrefix(context.Context, string) int             { return 0 }

// Key derives a deterministic cache key of the form prefix:op:arg1:arg2.
// Only primitive arguments contribute; a map[string]any contributes k=v pairs sorted by key.
func Key(prefix, op string, args ...any) string {
	parts := []string{prefix, op}
	for _, arg := range args {
		if named, ok := arg.(map[string]any); ok {
			keys := make([]string, 0, len(named))
			for k := range named {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if s, ok := primitive(named[k]); ok {
					parts = append(parts, k+"="+s)
				}
			}
			continue
		}
		if s, ok := primitive(arg); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ":")
}

func primitive(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}
