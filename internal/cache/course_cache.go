// Package cache holds read-through caches for catalog data. Cache failures
// never fail a request: a miss or a Redis error falls back to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"edutech/internal/logger"
	"edutech/internal/models"
)

const (
	courseListKey   = "edutech:courses:all"
	courseKeyPrefix = "edutech:courses:"
)

// CourseCache caches the course catalog.
type CourseCache interface {
	GetList(ctx context.Context) ([]models.Course, bool)
	SetList(ctx context.Context, courses []models.Course)
	Get(ctx context.Context, id int64) (*models.Course, bool)
	Set(ctx context.Context, course *models.Course)
	// Invalidate drops the cached list after the catalog changed.
	Invalidate(ctx context.Context)
}

// RedisCourseCache stores JSON-encoded courses in Redis with a fixed TTL.
type RedisCourseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCourseCache creates a RedisCourseCache.
func NewRedisCourseCache(client *redis.Client, ttl time.Duration) *RedisCourseCache {
	return &RedisCourseCache{client: client, ttl: ttl}
}

func courseKey(id int64) string {
	return courseKeyPrefix + strconv.FormatInt(id, 10)
}

func (c *RedisCourseCache) GetList(ctx context.Context) ([]models.Course, bool) {
	var courses []models.Course
	if !c.load(ctx, courseListKey, &courses) {
		return nil, false
	}
	return courses, true
}

func (c *RedisCourseCache) SetList(ctx context.Context, courses []models.Course) {
	c.store(ctx, courseListKey, courses)
}

func (c *RedisCourseCache) Get(ctx context.Context, id int64) (*models.Course, bool) {
	var course models.Course
	if !c.load(ctx, courseKey(id), &course) {
		return nil, false
	}
	return &course, true
}

func (c *RedisCourseCache) Set(ctx context.Context, course *models.Course) {
	c.store(ctx, courseKey(course.ID), course)
}

func (c *RedisCourseCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, courseListKey).Err(); err != nil {
		logger.Get().Warnw("course cache invalidation failed", "error", err)
	}
}

func (c *RedisCourseCache) load(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Get().Warnw("course cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Get().Warnw("course cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *RedisCourseCache) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Get().Warnw("course cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Get().Warnw("course cache write failed", "key", key, "error", err)
	}
}

// NoopCourseCache never stores anything. It is used when Redis is not configured.
type NoopCourseCache struct{}

func (NoopCourseCache) GetList(context.Context) ([]models.Course, bool)   { return nil, false }
func (NoopCourseCache) SetList(context.Context, []models.Course)           {}
func (NoopCourseCache) Get(context.Context, int64) (*models.Course, bool) { return nil, false }
func (NoopCourseCache) Set(context.Context, *models.Course)                {}
func (NoopCourseCache) Invalidate(context.Context)                        {}
