package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsync "github.com/novizna/ninjasync/internal/application/sync"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/logger"
	"github.com/novizna/ninjasync/internal/infrastructure/scheduler"
	"github.com/novizna/ninjasync/internal/interfaces/http/dto"
)

// documentSyncer runs individual sync operations in either direction
type documentSyncer interface {
	SyncDocumentOut(ctx context.Context, entityType syncdomain.EntityType, documentRef string) error
	SyncRecordIn(ctx context.Context, entityType syncdomain.EntityType, ninjaCompanyID string, raw json.RawMessage) error
	FetchEntityByID(ctx context.Context, ninjaCompanyID string, entityType syncdomain.EntityType, remoteID string) (json.RawMessage, error)
}

// pullScheduler queues bulk pull jobs and exposes their history
type pullScheduler interface {
	SchedulePull(entityType *syncdomain.EntityType, ninjaCompanyID string) (*scheduler.PullJob, error)
	GetJobHistory(limit int) []*scheduler.PullJob
}

// statusReporter reports configuration summary, activity and stats
type statusReporter interface {
	Summary(ctx context.Context) (*appsync.ConfigSummary, error)
	RecentActivity(ctx context.Context, filter syncdomain.LogFilter) ([]syncdomain.LogEntry, error)
	Stats(ctx context.Context, days int) (*syncdomain.LogStats, error)
}

// SyncHandler serves the sync trigger and reporting endpoints
type SyncHandler struct {
	BaseHandler
	syncer    documentSyncer
	scheduler pullScheduler
	status    statusReporter
	logger    *zap.Logger
}

// NewSyncHandler creates a sync handler
func NewSyncHandler(syncer documentSyncer, sched pullScheduler, status statusReporter, log *zap.Logger) *SyncHandler {
	return &SyncHandler{syncer: syncer, scheduler: sched, status: status, logger: log}
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	{
		sync.POST("/document", h.SyncDocument)
		sync.POST("/record", h.SyncRecord)
		sync.POST("/pull", h.Pull)
		sync.GET("/jobs", h.Jobs)
		sync.GET("/summary", h.Summary)
		sync.GET("/logs", h.Logs)
		sync.GET("/stats", h.Stats)
	}
}

// parseEntityType validates a request entity type string
func parseEntityType(raw string) (syncdomain.EntityType, bool) {
	t := syncdomain.EntityType(raw)
	return t, t.IsValid()
}

// SyncDocument pushes one local document to Invoice Ninja
func (h *SyncHandler) SyncDocument(c *gin.Context) {
	var req dto.SyncDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entityType, ok := parseEntityType(req.EntityType)
	if !ok {
		h.BadRequest(c, "unknown entity type: "+req.EntityType)
		return
	}

	ctx := c.Request.Context()
	if err := h.syncer.SyncDocumentOut(ctx, entityType, req.DocumentRef); err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(ctx).Info("document synced",
		zap.String("entity_type", entityType.String()),
		zap.String("document", req.DocumentRef))
	h.Message(c, "document synced")
}

// SyncRecord fetches one remote record and lands it locally
func (h *SyncHandler) SyncRecord(c *gin.Context) {
	var req dto.SyncRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entityType, ok := parseEntityType(req.EntityType)
	if !ok {
		h.BadRequest(c, "unknown entity type: "+req.EntityType)
		return
	}

	ctx := c.Request.Context()
	raw, err := h.syncer.FetchEntityByID(ctx, req.NinjaCompanyID, entityType, req.RemoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.syncer.SyncRecordIn(ctx, entityType, req.NinjaCompanyID, raw); err != nil {
		h.HandleError(c, err)
		return
	}

	logger.L(ctx).Info("record synced",
		zap.String("entity_type", entityType.String()),
		zap.String("remote_id", req.RemoteID))
	h.Message(c, "record synced")
}

// Pull queues a bulk pull job and returns it
func (h *SyncHandler) Pull(c *gin.Context) {
	var req dto.PullRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	var entityType *syncdomain.EntityType
	if req.EntityType != "" {
		t, ok := parseEntityType(req.EntityType)
		if !ok {
			h.BadRequest(c, "unknown entity type: "+req.EntityType)
			return
		}
		entityType = &t
	}

	job, err := h.scheduler.SchedulePull(entityType, req.NinjaCompanyID)
	if err != nil {
		if errors.Is(err, scheduler.ErrJobQueueFull) {
			h.ErrorWithCode(c, dto.ErrCodeQueueFull, "pull queue is full, retry later")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Accepted(c, pullJobResponse(job))
}

// Jobs returns the recent pull job history
func (h *SyncHandler) Jobs(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			h.BadRequest(c, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	jobs := h.scheduler.GetJobHistory(limit)
	out := make([]dto.PullJobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, pullJobResponse(job))
	}
	h.Success(c, out)
}

// Summary returns the effective sync configuration with warnings
func (h *SyncHandler) Summary(c *gin.Context) {
	summary, err := h.status.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Logs returns recent sync log entries, optionally filtered
func (h *SyncHandler) Logs(c *gin.Context) {
	var req dto.LogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := syncdomain.LogFilter{
		ERPCompany: req.ERPCompany,
		Limit:      req.Limit,
	}
	if req.EntityType != "" {
		t, ok := parseEntityType(req.EntityType)
		if !ok {
			h.BadRequest(c, "unknown entity type: "+req.EntityType)
			return
		}
		filter.EntityType = &t
	}
	if req.Direction != "" {
		d := syncdomain.Direction(req.Direction)
		if !d.IsValid() {
			h.BadRequest(c, "direction must be OUTBOUND or INBOUND")
			return
		}
		filter.Direction = &d
	}
	if req.Status != "" {
		s := syncdomain.LogStatus(req.Status)
		if !s.IsValid() {
			h.BadRequest(c, "unknown log status: "+req.Status)
			return
		}
		filter.Status = &s
	}

	entries, err := h.status.RecentActivity(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]dto.LogEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.LogEntryResponseFromDomain(&entries[i]))
	}
	h.Success(c, out)
}

// Stats aggregates sync outcomes over the last n days (default 7)
func (h *SyncHandler) Stats(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 365 {
			h.BadRequest(c, "days must be between 1 and 365")
			return
		}
		days = n
	}

	stats, err := h.status.Stats(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.StatsResponseFromDomain(stats))
}

// pullJobResponse converts a pull job to its response form
func pullJobResponse(job *scheduler.PullJob) dto.PullJobResponse {
	out := dto.PullJobResponse{
		ID:          job.ID.String(),
		CompanyID:   job.NinjaCompanyID,
		Status:      string(job.Status),
		Error:       job.Error,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
		Fetched:     job.Fetched,
		Synced:      job.Synced,
		Skipped:     job.Skipped,
		Failed:      job.Failed,
	}
	if job.EntityType != nil {
		out.EntityType = job.EntityType.String()
	}
	return out
}
