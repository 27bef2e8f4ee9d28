package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

// StoredResponse is what a replay sends back.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated POST carrying the
// same Idempotency-Key, and rejects a duplicate that arrives while the first
// is still running. Only 2xx responses are stored.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	logger := zap.L().Named("middleware.idempotency")

	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		// 1. CEK CACHE
		val, err := rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var stored StoredResponse
			if jerr := json.Unmarshal(val, &stored); jerr == nil && stored.Status != 0 {
				c.Header("Idempotent-Replay", "true")
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
			logger.Warn("idempotency cache entry unreadable, ignoring", zap.String("key", cacheKey))
		} else if err != redis.Nil {
			logger.Warn("idempotency cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}

		// 2. ATOMIC LOCK (SetNX), expiry pendek agar lock hilang jika server crash
		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			logger.Warn("idempotency lock failed, continuing without it", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok": false,
				"error": gin.H{
					"code":    "PROCESSING",
					"message": "Request with this Idempotency-Key is still being processed",
				},
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		// request context may already be cancelled here
		bg := context.WithoutCancel(ctx)
		status := recorder.Status()
		if status >= 200 && status < 300 {
			data, err := json.Marshal(StoredResponse{
				Status:      status,
				ContentType: recorder.Header().Get("Content-Type"),
				Body:        recorder.body.Bytes(),
			})
			if err == nil {
				err = rdb.Set(bg, cacheKey, data, idempotencyCacheTTL).Err()
			}
			if err != nil {
				logger.Warn("idempotency cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		if err := rdb.Del(bg, lockKey).Err(); err != nil {
			logger.Warn("idempotency unlock failed", zap.String("key", lockKey), zap.Error(err))
		}
	}
}
