package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimiter builds a per-client-IP limiter middleware for a rate such as
// "100-M" or "10-S". With a redis address the limit is shared across
// instances; otherwise an in-memory store is used.
func RateLimiter(rateStr, redisAddr string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "guardian:limiter"})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStore()
	}

	return mgin.NewMiddleware(limiter.New(store, rate)), nil
}
