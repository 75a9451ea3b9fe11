package invoiceninja

import (
	"context"
	"sync"

	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// Factory builds and caches per-company clients from stored credentials.
// A cached client is discarded when the stored token or URL changes.
type Factory struct {
	credentials syncdomain.CredentialRepository
	logger      *zap.Logger

	mu    sync.Mutex
	cache map[string]*cachedClient
}

type cachedClient struct {
	client   *Client
	apiToken string
	baseURL  string
}

// NewFactory creates a client factory over the credential store.
func NewFactory(credentials syncdomain.CredentialRepository, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{
		credentials: credentials,
		logger:      logger,
		cache:       make(map[string]*cachedClient),
	}
}

// ForCompany returns a client scoped to the given remote company. The
// credential must exist, be enabled and carry a token.
func (f *Factory) ForCompany(ctx context.Context, ninjaCompanyID string) (*Client, error) {
	cred, err := f.credentials.FindByNinjaCompanyID(ctx, ninjaCompanyID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if entry, ok := f.cache[ninjaCompanyID]; ok &&
		entry.apiToken == cred.APIToken && entry.baseURL == cred.BaseURL {
		return entry.client, nil
	}

	cfg, err := ConfigFromCredential(cred)
	if err != nil {
		return nil, err
	}
	client, err := NewClient(cfg, f.logger.With(zap.String("ninja_company_id", ninjaCompanyID)))
	if err != nil {
		return nil, err
	}

	f.cache[ninjaCompanyID] = &cachedClient{
		client:   client,
		apiToken: cred.APIToken,
		baseURL:  cred.BaseURL,
	}
	return client, nil
}

// Invalidate drops the cached client for a company.
func (f *Factory) Invalidate(ninjaCompanyID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.cache, ninjaCompanyID)
}
