package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OpenNSW/tonban/internal/logging"
	"github.com/OpenNSW/tonban/internal/tonban/model"
)

// Service is the lookup/search capability the handlers depend on.
type Service interface {
	LookupByCode(ctx context.Context, dir model.Direction, rawCode string) ([]model.Record, error)
	Search(ctx context.Context, dir model.Direction, rawKeyword string, rawLimit *string) ([]model.Record, error)
}

// Pinger reports whether the dataset is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TonbanRouter serves the 統番 lookup and search routes.
type TonbanRouter struct {
	service Service
	dataset Pinger
}

func NewTonbanRouter(service Service, dataset Pinger) *TonbanRouter {
	return &TonbanRouter{service: service, dataset: dataset}
}

// Register mounts the routes on r.
func (tr *TonbanRouter) Register(r gin.IRouter) {
	r.GET("/health", tr.HandleHealth)

	group := r.Group("/tonban")
	for _, dir := range []model.Direction{model.DirectionExport, model.DirectionImport} {
		group.GET("/"+string(dir), tr.HandleLookup(dir))
		group.GET("/"+string(dir)+"/search", tr.HandleSearch(dir))
	}
}

// HandleLookup handles GET /tonban/{export,import}?code=統番
func (tr *TonbanRouter) HandleLookup(dir model.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := tr.service.LookupByCode(c.Request.Context(), dir, c.Query("code"))
		if err != nil {
			tr.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, model.Success(records))
	}
}

// HandleSearch handles GET /tonban/{export,import}/search?q=キーワード&limit=件数
func (tr *TonbanRouter) HandleSearch(dir model.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rawLimit *string
		if limit, ok := c.GetQuery("limit"); ok {
			rawLimit = &limit
		}
		records, err := tr.service.Search(c.Request.Context(), dir, c.Query("q"), rawLimit)
		if err != nil {
			tr.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, model.Success(records))
	}
}

// HandleHealth handles GET /health
func (tr *TonbanRouter) HandleHealth(c *gin.Context) {
	if tr.dataset != nil {
		if err := tr.dataset.Ping(c.Request.Context()); err != nil {
			logging.FromContext(c.Request.Context()).Warn("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": "tonban-api"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "tonban-api"})
}

func (tr *TonbanRouter) writeError(c *gin.Context, err error) {
	var reqErr *model.RequestError
	if errors.As(err, &reqErr) {
		c.JSON(statusFor(reqErr.Kind), model.Failure(reqErr.Message))
		return
	}

	ctx := c.Request.Context()
	if errors.Is(err, model.ErrDatasetUnavailable) {
		logging.FromContext(ctx).ErrorContext(ctx, "dataset unavailable", "error", err)
		c.JSON(http.StatusServiceUnavailable, model.Failure("データベースが利用できません"))
		return
	}

	logging.FromContext(ctx).ErrorContext(ctx, "query failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, model.Failure("検索中にエラーが発生しました"))
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, model.ErrMissingParameter), errors.Is(kind, model.ErrInvalidParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
