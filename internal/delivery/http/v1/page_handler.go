package v1

import (
	"net/http"
	"time"

	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	portfolioUC domain.PortfolioUsecase
	contactUC   domain.ContactUsecase
}

// NewPageHandler serves the HTML page at the site root
func NewPageHandler(site *gin.RouterGroup, portfolioUC domain.PortfolioUsecase, contactUC domain.ContactUsecase) {
	handler := &PageHandler{portfolioUC: portfolioUC, contactUC: contactUC}
	site.GET("/", handler.Index)
}

func (h *PageHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Portfolio": h.portfolioUC.Portfolio(ctx),
		"Contact":   h.contactUC.Status(ctx, middleware.SessionID(c)),
		"Year":      time.Now().Year(),
	})
}
