package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/logger"
	"github.com/novizna/ninjasync/internal/interfaces/http/dto"
)

// mappingValidator checks a mapping against the rest of the stored set
type mappingValidator interface {
	ValidateSet(ctx context.Context, mapping *syncdomain.CompanyMapping) error
}

// MappingHandler manages company mapping CRUD
type MappingHandler struct {
	BaseHandler
	repo      syncdomain.CompanyMappingRepository
	validator mappingValidator
	logger    *zap.Logger
}

// NewMappingHandler creates a mapping handler
func NewMappingHandler(repo syncdomain.CompanyMappingRepository, validator mappingValidator, log *zap.Logger) *MappingHandler {
	return &MappingHandler{repo: repo, validator: validator, logger: log}
}

// RegisterRoutes registers mapping routes
func (h *MappingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mappings := rg.Group("/mappings")
	{
		mappings.GET("", h.List)
		mappings.POST("", h.Create)
		mappings.GET("/:id", h.Get)
		mappings.PUT("/:id", h.Update)
		mappings.DELETE("/:id", h.Delete)
	}
}

// List returns every company mapping
func (h *MappingHandler) List(c *gin.Context) {
	mappings, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]dto.MappingResponse, 0, len(mappings))
	for i := range mappings {
		out = append(out, dto.MappingResponseFromDomain(&mappings[i]))
	}
	h.Success(c, out)
}

// Get returns a single mapping by ID
func (h *MappingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid mapping id")
		return
	}

	mapping, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MappingResponseFromDomain(mapping))
}

// Create creates a new company mapping
func (h *MappingHandler) Create(c *gin.Context) {
	var req dto.MappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	mapping, err := syncdomain.NewCompanyMapping(req.ERPCompany, req.NinjaCompanyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	mapping.NinjaCompanyName = req.NinjaCompanyName
	if req.Enabled != nil && !*req.Enabled {
		mapping.Disable()
	}
	if req.IsDefault {
		mapping.MarkDefault()
	}

	ctx := c.Request.Context()
	if err := h.validator.ValidateSet(ctx, mapping); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.repo.Save(ctx, mapping); err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(ctx).Info("company mapping created",
		zap.String("erp_company", mapping.ERPCompany),
		zap.String("ninja_company_id", mapping.NinjaCompanyID))
	h.Created(c, dto.MappingResponseFromDomain(mapping))
}

// Update updates an existing mapping
func (h *MappingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid mapping id")
		return
	}

	var req dto.MappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	mapping, err := h.repo.FindByID(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	mapping.ERPCompany = req.ERPCompany
	mapping.NinjaCompanyID = req.NinjaCompanyID
	mapping.NinjaCompanyName = req.NinjaCompanyName
	if req.Enabled != nil {
		if *req.Enabled {
			mapping.Enable()
		} else {
			mapping.Disable()
		}
	}
	mapping.IsDefault = req.IsDefault

	if err := h.validator.ValidateSet(ctx, mapping); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.repo.Save(ctx, mapping); err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(ctx).Info("company mapping updated", zap.String("mapping_id", id.String()))
	h.Success(c, dto.MappingResponseFromDomain(mapping))
}

// Delete removes a mapping
func (h *MappingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid mapping id")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.repo.FindByID(ctx, id); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.repo.Delete(ctx, id); err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(ctx).Info("company mapping deleted", zap.String("mapping_id", id.String()))
	h.NoContent(c)
}
