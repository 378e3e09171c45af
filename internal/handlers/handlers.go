package handlers

import (
	"context"
	"net/http"

	"holdings/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type HoldingsStore interface {
	GetUserHoldings(ctx context.Context, userID string) ([]models.Holding, error)
}

type Handler struct {
	repo        HoldingsStore
	defaultUser string
	log         *logrus.Logger
}

func NewHandler(r HoldingsStore, defaultUser string, log *logrus.Logger) *Handler {
	return &Handler{repo: r, defaultUser: defaultUser, log: log}
}

// Register mounts the feed routes on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET("/health", h.Health)
	rg.GET("/holdings", h.GetDefaultHoldings)
	rg.GET("/holdings/:userId", h.GetHoldings)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetDefaultHoldings(c *gin.Context) {
	h.writeHoldings(c, h.defaultUser)
}

func (h *Handler) GetHoldings(c *gin.Context) {
	h.writeHoldings(c, c.Param("userId"))
}

func (h *Handler) writeHoldings(c *gin.Context, userID string) {
	holdings, err := h.repo.GetUserHoldings(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf("get holdings for %s failed: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, models.NewHoldingsResponse(holdings))
}

// RateLimit rejects requests with 429 once the limiter is exhausted.
func RateLimit(l *rate.Limiter, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			log.Warnf("rate limit exceeded for %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": http.StatusText(http.StatusTooManyRequests)})
			return
		}
		c.Next()
	}
}
