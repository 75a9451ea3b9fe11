package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/logger"
	"github.com/novizna/ninjasync/internal/interfaces/http/dto"
)

// companyDiscoverer enumerates remote companies and probes their credentials
type companyDiscoverer interface {
	DiscoverCompanies(ctx context.Context) ([]syncdomain.Credential, error)
	TestConnection(ctx context.Context, ninjaCompanyID string) error
}

// CompanyHandler manages remote company credentials
type CompanyHandler struct {
	BaseHandler
	credentials syncdomain.CredentialRepository
	discovery   companyDiscoverer
	logger      *zap.Logger
}

// NewCompanyHandler creates a company handler
func NewCompanyHandler(credentials syncdomain.CredentialRepository, discovery companyDiscoverer, log *zap.Logger) *CompanyHandler {
	return &CompanyHandler{credentials: credentials, discovery: discovery, logger: log}
}

// RegisterRoutes registers company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.GET("", h.List)
		companies.POST("/discover", h.Discover)
		companies.PUT("/:ninja_company_id", h.Update)
		companies.POST("/:ninja_company_id/test", h.TestConnection)
	}
}

// List returns every known remote company with its credential state.
// API tokens are masked in the response.
func (h *CompanyHandler) List(c *gin.Context) {
	creds, err := h.credentials.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]dto.CredentialResponse, 0, len(creds))
	for i := range creds {
		out = append(out, dto.CredentialResponseFromDomain(&creds[i]))
	}
	h.Success(c, out)
}

// Discover queries Invoice Ninja for its companies and upserts a credential
// record per company found
func (h *CompanyHandler) Discover(c *gin.Context) {
	ctx := c.Request.Context()
	creds, err := h.discovery.DiscoverCompanies(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(ctx).Info("company discovery completed", zap.Int("companies", len(creds)))

	out := make([]dto.CredentialResponse, 0, len(creds))
	for i := range creds {
		out = append(out, dto.CredentialResponseFromDomain(&creds[i]))
	}
	h.Success(c, out)
}

// Update updates the stored credential for a remote company. An empty
// api_token in the request leaves the stored token untouched.
func (h *CompanyHandler) Update(c *gin.Context) {
	ninjaCompanyID := c.Param("ninja_company_id")

	var req dto.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	cred, err := h.credentials.FindByNinjaCompanyID(ctx, ninjaCompanyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if req.APIToken != "" {
		cred.APIToken = req.APIToken
	}
	if req.BaseURL != "" {
		cred.BaseURL = req.BaseURL
	}
	if req.Enabled != nil {
		cred.Enabled = *req.Enabled
	}

	if err := h.credentials.Save(ctx, cred); err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(ctx).Info("credential updated", zap.String("ninja_company_id", ninjaCompanyID))
	h.Success(c, dto.CredentialResponseFromDomain(cred))
}

// TestConnection pings Invoice Ninja with the stored credential and records
// the outcome on the credential
func (h *CompanyHandler) TestConnection(c *gin.Context) {
	ninjaCompanyID := c.Param("ninja_company_id")

	ctx := c.Request.Context()
	if err := h.discovery.TestConnection(ctx, ninjaCompanyID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "connection ok")
}
