package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache хранит сериализованные значения с TTL.
// Ошибка Get означает сбой хранилища, промах возвращается как found == false.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// GetJSON читает значение и декодирует его в dest.
func GetJSON(ctx context.Context, c Cache, key string, dest any) (bool, error) {
	raw, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache: повреждённое значение %s: %w", key, err)
	}
	return true, nil
}

// SetJSON сериализует значение и кладёт его в кеш.
func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: не удалось сериализовать %s: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}

// Ключи кеша
const CategoriesKey = "skill_connector:categories"
