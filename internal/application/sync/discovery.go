package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/invoiceninja"
)

// ---------------------------------------------------------------------------
// DiscoveryService
// ---------------------------------------------------------------------------

// DiscoveryService finds remote companies through master credentials and
// seeds credential records for them. Discovered records start disabled and
// without a token: company tokens cannot be read through the API, so an
// operator enters them before enabling sync.
type DiscoveryService struct {
	credentials syncdomain.CredentialRepository
	factory     *invoiceninja.Factory
	masterCfg   *invoiceninja.Config
	logger      *zap.Logger
}

// NewDiscoveryService creates a discovery service. masterCfg may be nil when
// no master credentials are configured; discovery is then unavailable.
func NewDiscoveryService(
	credentials syncdomain.CredentialRepository,
	factory *invoiceninja.Factory,
	masterCfg *invoiceninja.Config,
	logger *zap.Logger,
) *DiscoveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscoveryService{
		credentials: credentials,
		factory:     factory,
		masterCfg:   masterCfg,
		logger:      logger,
	}
}

// DiscoverCompanies lists the remote companies visible to the master token
// and creates credential records for the ones not yet known. It returns the
// newly created records.
func (s *DiscoveryService) DiscoverCompanies(ctx context.Context) ([]syncdomain.Credential, error) {
	if s.masterCfg == nil {
		return nil, syncdomain.ErrNotConfigured
	}
	master, err := invoiceninja.NewClient(s.masterCfg, s.logger)
	if err != nil {
		return nil, err
	}

	remote, err := master.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery: listing companies: %w", err)
	}

	var created []syncdomain.Credential
	for _, company := range remote {
		_, err := s.credentials.FindByNinjaCompanyID(ctx, company.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, syncdomain.ErrCredentialNotFound) {
			return created, err
		}

		cred, err := syncdomain.NewCredential(company.ID, company.DisplayName(), s.masterCfg.BaseURL)
		if err != nil {
			return created, err
		}
		if err := s.credentials.Save(ctx, cred); err != nil {
			return created, err
		}
		s.logger.Info("discovered invoice ninja company",
			zap.String("ninja_company_id", company.ID),
			zap.String("name", company.DisplayName()))
		created = append(created, *cred)
	}
	return created, nil
}

// TestConnection pings the remote with a company's stored credentials and
// records the outcome on the credential.
func (s *DiscoveryService) TestConnection(ctx context.Context, ninjaCompanyID string) error {
	cred, err := s.credentials.FindByNinjaCompanyID(ctx, ninjaCompanyID)
	if err != nil {
		return err
	}
	if err := cred.Usable(); err != nil {
		return err
	}

	client, err := s.factory.ForCompany(ctx, ninjaCompanyID)
	if err != nil {
		return err
	}

	pingErr := client.TestConnection(ctx)
	cred.RecordConnectionTest(pingErr == nil)
	if saveErr := s.credentials.Save(ctx, cred); saveErr != nil {
		return saveErr
	}
	return pingErr
}
