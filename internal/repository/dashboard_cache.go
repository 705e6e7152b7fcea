// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// dashboardCacheTTL 是管理员仪表盘统计的缓存有效期。
const dashboardCacheTTL = 60 * time.Second

// DashboardStats 是管理员仪表盘的统计结果。
type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalAssessments  int64 `json:"totalAssessments"`
	TotalChatSessions int64 `json:"totalChatSessions"`
	TotalResumes      int64 `json:"totalResumes"`
	RecentUsers       int64 `json:"recentUsers"`
}

// DashboardCache 定义了仪表盘统计缓存的操作接口。
type DashboardCache interface {
	Get(ctx context.Context) (*DashboardStats, error)
	Set(ctx context.Context, stats *DashboardStats) error
	Invalidate(ctx context.Context) error
}

type redisDashboardCache struct {
	redisClient *redis.Client
}

// NewDashboardCache 创建一个新的 DashboardCache 实例。
func NewDashboardCache(redisClient *redis.Client) DashboardCache {
	return &redisDashboardCache{redisClient: redisClient}
}

const dashboardCacheKey = "admin:dashboard:stats"

// Get 从 Redis 读取缓存的统计结果。缓存未命中时返回 (nil, nil)。
func (c *redisDashboardCache) Get(ctx context.Context) (*DashboardStats, error) {
	jsonData, err := c.redisClient.Get(ctx, dashboardCacheKey).Result()
	if err == redis.Nil {
		return nil, nil // 缓存未命中
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats cache: %w", err)
	}
	var stats DashboardStats
	if err := json.Unmarshal([]byte(jsonData), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard stats cache: %w", err)
	}
	return &stats, nil
}

// Set 将统计结果写入 Redis，并设置过期时间。
func (c *redisDashboardCache) Set(ctx context.Context, stats *DashboardStats) error {
	jsonData, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard stats: %w", err)
	}
	if err := c.redisClient.Set(ctx, dashboardCacheKey, jsonData, dashboardCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set dashboard stats cache: %w", err)
	}
	return nil
}

// Invalidate 删除缓存，管理员改动用户数据后调用以保证统计及时刷新。
func (c *redisDashboardCache) Invalidate(ctx context.Context) error {
	return c.redisClient.Del(ctx, dashboardCacheKey).Err()
}
