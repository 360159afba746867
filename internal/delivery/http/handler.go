// Package http is the thin delivery surface over the resolution and
// collection pipeline. It knows how to parse a request and shape a JSON
// response; all pipeline semantics live in the usecase layer.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/janscope/backend/internal/domain"
	"github.com/janscope/backend/internal/infrastructure/rakuten"
	"github.com/janscope/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	resolver  *usecase.ProductResolver
	collector *usecase.CompetitorCollector
}

// NewHandler creates a new HTTP handler.
func NewHandler(resolver *usecase.ProductResolver, collector *usecase.CompetitorCollector) *Handler {
	return &Handler{
		resolver:  resolver,
		collector: collector,
	}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "janscope-backend",
	})
}

// searchRequest is the competitor search request body. PriceMin/PriceMax are
// only consulted in custom price mode.
type searchRequest struct {
	URL       string `json:"url" binding:"required"`
	PriceMode string `json:"priceMode"`
	PriceMin  *int   `json:"priceMin"`
	PriceMax  *int   `json:"priceMax"`
}

// searchResponse carries the resolved product and its ordered competitor
// listings, sufficient for tabular export downstream.
type searchResponse struct {
	Product     *domain.Product            `json:"product"`
	PriceBand   domain.PriceBand           `json:"priceBand"`
	Competitors []domain.CompetitorListing `json:"competitors"`
}

// CompetitorSearch resolves the product behind a listing URL and returns the
// competing listings in its category and price band.
func (h *Handler) CompetitorSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidRequest.Error()})
		return
	}

	shopCode, itemCode, err := rakuten.ParseItemURL(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidListingURL.Error()})
		return
	}

	ctx := c.Request.Context()

	product, err := h.resolver.Resolve(ctx, shopCode, itemCode)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrProductNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolution failed"})
		return
	}

	band := domain.DerivePriceBand(domain.PriceMode(req.PriceMode), product.Price, req.PriceMin, req.PriceMax)

	competitors := h.collector.Collect(ctx, domain.SearchCriteria{
		CategoryID:     product.CategoryID,
		Band:           band,
		ExcludedShopID: product.ShopID,
	})

	c.JSON(http.StatusOK, searchResponse{
		Product:     product,
		PriceBand:   band,
		Competitors: competitors,
	})
}
