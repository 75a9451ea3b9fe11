package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/interfaces/http/dto"
)

// remoteFetcher reads raw pages from Invoice Ninja without landing them
type remoteFetcher interface {
	FetchEntitiesForCompany(ctx context.Context, ninjaCompanyID string, entityType syncdomain.EntityType, page, perPage int) (*syncdomain.FetchResult, error)
	FetchEntitiesForMappedCompanies(ctx context.Context, entityType syncdomain.EntityType, perPage int) (map[string]*syncdomain.FetchResult, error)
}

// FetchHandler serves read-only previews of remote records
type FetchHandler struct {
	BaseHandler
	fetcher remoteFetcher
	logger  *zap.Logger
}

// NewFetchHandler creates a fetch handler
func NewFetchHandler(fetcher remoteFetcher, log *zap.Logger) *FetchHandler {
	return &FetchHandler{fetcher: fetcher, logger: log}
}

// RegisterRoutes registers fetch routes
func (h *FetchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/fetch", h.Fetch)
}

// Fetch returns a page of raw remote records. With a company it pages
// through that company; without one it returns the first page of every
// mapped company keyed by company ID.
func (h *FetchHandler) Fetch(c *gin.Context) {
	var req dto.FetchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entityType, ok := parseEntityType(req.EntityType)
	if !ok {
		h.BadRequest(c, "unknown entity type: "+req.EntityType)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PerPage == 0 {
		req.PerPage = 50
	}

	ctx := c.Request.Context()
	if req.NinjaCompanyID != "" {
		result, err := h.fetcher.FetchEntitiesForCompany(ctx, req.NinjaCompanyID, entityType, req.Page, req.PerPage)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, dto.FetchResultResponseFromDomain(result))
		return
	}

	results, err := h.fetcher.FetchEntitiesForMappedCompanies(ctx, entityType, req.PerPage)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make(map[string]dto.FetchResultResponse, len(results))
	for companyID, result := range results {
		out[companyID] = dto.FetchResultResponseFromDomain(result)
	}
	h.Success(c, out)
}
