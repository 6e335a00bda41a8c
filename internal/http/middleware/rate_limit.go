package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
	"github.com/matheusgmdr7/contratando2/internal/logger"
)

// RateLimitMiddleware ограничивает число запросов с одного IP.
// По умолчанию: 10 запросов в минуту. prefix разделяет счётчики маршрутов.
func RateLimitMiddleware(prefix string, limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = time.Minute
	}

	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          prefix,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	})
	instance := limiter.New(store, limiter.Rate{Period: period, Limit: limit})

	return func(c *gin.Context) {
		ctx, err := instance.Get(c, c.ClientIP())
		if err != nil {
			// хранилище в памяти, ошибка здесь означает баг, а не перегрузку
			logger.Component("http").WithError(err).Error("http: ошибка rate limiter")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))

		if ctx.Reached {
			response.TooManyRequests(c, "muitas requisições, tente novamente mais tarde")
			return
		}

		c.Next()
	}
}
