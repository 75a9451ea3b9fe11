package sync

import (
	"context"
	"time"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// StatusService
// ---------------------------------------------------------------------------

// ConfigSummary describes the effective sync configuration plus warnings a
// reviewer should see before trusting it.
type ConfigSummary struct {
	Directives      []syncdomain.Directive `json:"directives"`
	MappingCount    int                    `json:"mapping_count"`
	EnabledMappings int                    `json:"enabled_mappings"`
	HasDefault      bool                   `json:"has_default"`
	CompanyCount    int                    `json:"company_count"`
	WebhookEnabled  bool                   `json:"webhook_enabled"`
	Warnings        []string               `json:"warnings,omitempty"`
}

// StatusService reports on sync health and configuration.
type StatusService struct {
	directives        DirectiveProvider
	mappings          syncdomain.CompanyMappingRepository
	credentials       syncdomain.CredentialRepository
	logs              syncdomain.LogRepository
	webhookConfigured bool
}

// NewStatusService creates a status service.
func NewStatusService(
	directives DirectiveProvider,
	mappings syncdomain.CompanyMappingRepository,
	credentials syncdomain.CredentialRepository,
	logs syncdomain.LogRepository,
	webhookConfigured bool,
) *StatusService {
	return &StatusService{
		directives:        directives,
		mappings:          mappings,
		credentials:       credentials,
		logs:              logs,
		webhookConfigured: webhookConfigured,
	}
}

// Summary builds the configuration summary with validation warnings.
func (s *StatusService) Summary(ctx context.Context) (*ConfigSummary, error) {
	all, err := s.mappings.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	creds, err := s.credentials.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ConfigSummary{
		MappingCount:   len(all),
		WebhookEnabled: s.webhookConfigured,
		CompanyCount:   len(creds),
	}

	directives := s.directives.Directives()
	for _, t := range syncdomain.AllEntityTypes() {
		if d, ok := directives[t]; ok {
			summary.Directives = append(summary.Directives, d)
		}
	}

	for _, m := range all {
		if !m.Enabled {
			continue
		}
		summary.EnabledMappings++
		if m.IsDefault {
			summary.HasDefault = true
		}
	}

	summary.Warnings = s.warnings(summary, directives, creds)
	return summary, nil
}

func (s *StatusService) warnings(summary *ConfigSummary, directives syncdomain.DirectiveSet, creds []syncdomain.Credential) []string {
	var warnings []string

	if summary.EnabledMappings == 0 {
		warnings = append(warnings, "no enabled company mappings; nothing will sync")
	}
	if !summary.HasDefault {
		warnings = append(warnings, "no default mapping; documents of unmapped companies will be skipped")
	}

	inboundEnabled := len(directives.EnabledTypes(syncdomain.DirectionInbound)) > 0
	if inboundEnabled && !s.webhookConfigured {
		warnings = append(warnings, "inbound sync enabled but webhook secret unset; changes arrive only through scheduled pulls")
	}
	for _, t := range syncdomain.AllEntityTypes() {
		if d, ok := directives[t]; ok && d.Enabled && d.Outbound && d.Inbound {
			warnings = append(warnings, "bidirectional sync enabled for "+t.String()+"; review for update loops")
		}
	}

	usable := 0
	for i := range creds {
		if creds[i].Usable() == nil {
			usable++
		}
	}
	if usable == 0 && len(creds) > 0 {
		warnings = append(warnings, "no company credential is enabled with a token")
	}

	return warnings
}

// RecentActivity returns the latest sync log entries.
func (s *StatusService) RecentActivity(ctx context.Context, filter syncdomain.LogFilter) ([]syncdomain.LogEntry, error) {
	return s.logs.ListRecent(ctx, filter)
}

// Stats aggregates sync outcomes over the last n days.
func (s *StatusService) Stats(ctx context.Context, days int) (*syncdomain.LogStats, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.logs.Stats(ctx, since)
}
