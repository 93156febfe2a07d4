package v1

import (
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioUC domain.PortfolioUsecase
}

func NewPortfolioHandler(public *gin.RouterGroup, portfolioUC domain.PortfolioUsecase) {
	handler := &PortfolioHandler{portfolioUC: portfolioUC}

	public.GET("/portfolio", handler.GetPortfolio)
	public.GET("/portfolio/projects/featured", handler.GetFeaturedProjects)
}

// GetPortfolio godoc
// @Summary      Portfolio Content
// @Description  Profile, skills, projects, experience and social links shown on the page
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Portfolio}
// @Router       /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	response.Success(c, http.StatusOK, "Portfolio retrieved", h.portfolioUC.Portfolio(c.Request.Context()))
}

// GetFeaturedProjects godoc
// @Summary      Featured Projects
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Project}
// @Router       /portfolio/projects/featured [get]
func (h *PortfolioHandler) GetFeaturedProjects(c *gin.Context) {
	response.Success(c, http.StatusOK, "Featured projects retrieved", h.portfolioUC.FeaturedProjects(c.Request.Context()))
}
