package util

import (
	"context"
	"encoding/json"
	"time"

	"github.com/carepulse/carepulse-api/config"
	"github.com/redis/go-redis/v9"
)

const doctorDirectoryKey = "doctors:directory"

// DoctorDirectoryTTL bounds how stale the cached public doctor listing can be.
const DoctorDirectoryTTL = 60 * time.Second

// CacheDoctorDirectory stores the public doctor listing in Redis as JSON.
// Best-effort: a nil client or marshal/write failure is swallowed, the
// listing is always served from the database in that case.
func CacheDoctorDirectory(ctx context.Context, v interface{}) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, doctorDirectoryKey, b, DoctorDirectoryTTL).Err()
}

// GetCachedDoctorDirectory loads the cached doctor listing into dst.
// Returns false when Redis is unavailable or the key is absent/expired.
func GetCachedDoctorDirectory(ctx context.Context, dst interface{}) bool {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return false
	}
	b, err := rdb.Get(ctx, doctorDirectoryKey).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dst) == nil
}

// InvalidateDoctorDirectory drops the cached listing, e.g. after a new doctor
// registers. Best-effort.
func InvalidateDoctorDirectory(ctx context.Context) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	err := rdb.Del(ctx, doctorDirectoryKey).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}
