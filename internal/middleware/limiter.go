package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/OpenNSW/tonban/internal/logging"
	"github.com/OpenNSW/tonban/internal/tonban/model"
)

// ConcurrencyLimit lets at most workers requests run at once. Further
// requests wait for a slot until their context ends.
func ConcurrencyLimit(workers int) gin.HandlerFunc {
	sem := semaphore.NewWeighted(int64(workers))

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := sem.Acquire(ctx, 1); err != nil {
			logging.FromContext(ctx).Warn("request abandoned while waiting for a worker", "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, model.Failure("サーバーが混雑しています"))
			return
		}
		defer sem.Release(1)

		c.Next()
	}
}
