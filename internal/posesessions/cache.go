package posesessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/posecoach/internal/report"
	"github.com/2beens/posecoach/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultReportCacheSize = 32 * 1024 * 1024
	DefaultReportCacheTTL  = time.Hour
	reportKeyPrefix        = "posecoach:report:"
)

// Cache lookup results, as reported by ReportCache.Get.
const (
	CacheHitLocal  = "hit_local"
	CacheHitShared = "hit_shared"
	CacheMiss      = "miss"
)

// ReportCache keeps synthesized reports of completed sessions. An in process
// freecache is checked first, then redis, which is shared by all instances.
type ReportCache struct {
	local *freecache.Cache
	rdb   *redis.Client
	ttl   time.Duration
}

// NewReportCache creates the cache. rdb may be nil, then only the local layer is used.
func NewReportCache(sizeBytes int, ttl time.Duration, rdb *redis.Client) *ReportCache {
	if sizeBytes <= 0 {
		sizeBytes = DefaultReportCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultReportCacheTTL
	}
	return &ReportCache{
		local: freecache.NewCache(sizeBytes),
		rdb:   rdb,
		ttl:   ttl,
	}
}

func reportKey(sessionID string) string {
	return reportKeyPrefix + sessionID
}

// Get returns the cached report with the layer it came from.
func (c *ReportCache) Get(ctx context.Context, sessionID string) (*report.Report, string) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.posesessions.report.get")
	defer span.End()

	key := reportKey(sessionID)
	if data, err := c.local.Get([]byte(key)); err == nil {
		if rep, err := decodeReport(data); err == nil {
			return rep, CacheHitLocal
		}
		c.local.Del([]byte(key))
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Warnf("report cache [%s]: local get: %s", sessionID, err)
	}

	if c.rdb == nil {
		return nil, CacheMiss
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warnf("report cache [%s]: redis get: %s", sessionID, err)
		}
		return nil, CacheMiss
	}
	rep, err := decodeReport(data)
	if err != nil {
		log.Warnf("report cache [%s]: decode shared entry: %s", sessionID, err)
		return nil, CacheMiss
	}
	c.setLocal(key, data)
	return rep, CacheHitShared
}

func (c *ReportCache) Set(ctx context.Context, sessionID string, rep *report.Report) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.posesessions.report.set")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	key := reportKey(sessionID)
	c.setLocal(key, data)
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *ReportCache) Invalidate(ctx context.Context, sessionID string) error {
	key := reportKey(sessionID)
	c.local.Del([]byte(key))
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *ReportCache) setLocal(key string, data []byte) {
	if err := c.local.Set([]byte(key), data, int(c.ttl.Seconds())); err != nil {
		log.Debugf("report cache: local set [%s]: %s", key, err)
	}
}

func decodeReport(data []byte) (*report.Report, error) {
	rep := &report.Report{}
	if err := json.Unmarshal(data, rep); err != nil {
		return nil, err
	}
	return rep, nil
}
