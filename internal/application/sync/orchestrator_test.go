package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novizna/ninjasync/internal/domain/erp"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/invoiceninja"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type staticDirectives struct {
	set syncdomain.DirectiveSet
}

func (s staticDirectives) Directives() syncdomain.DirectiveSet { return s.set }

func allDirectives() staticDirectives {
	set := syncdomain.DirectiveSet{}
	for _, et := range syncdomain.AllEntityTypes() {
		set[et] = syncdomain.Directive{EntityType: et, Enabled: true, Outbound: true, Inbound: true}
	}
	return staticDirectives{set: set}
}

type stubCredentialRepo struct {
	credentials map[string]*syncdomain.Credential
}

func (s *stubCredentialRepo) FindByID(_ context.Context, _ uuid.UUID) (*syncdomain.Credential, error) {
	return nil, syncdomain.ErrCredentialNotFound
}

func (s *stubCredentialRepo) FindByNinjaCompanyID(_ context.Context, ninjaCompanyID string) (*syncdomain.Credential, error) {
	if cred, ok := s.credentials[ninjaCompanyID]; ok {
		return cred, nil
	}
	return nil, syncdomain.ErrCredentialNotFound
}

func (s *stubCredentialRepo) FindAll(_ context.Context) ([]syncdomain.Credential, error) {
	var out []syncdomain.Credential
	for _, c := range s.credentials {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCredentialRepo) Save(_ context.Context, _ *syncdomain.Credential) error { return nil }
func (s *stubCredentialRepo) Delete(_ context.Context, _ uuid.UUID) error            { return nil }

var _ syncdomain.CredentialRepository = (*stubCredentialRepo)(nil)

type stubCustomerStore struct {
	byName  map[string]*erp.Customer
	byNinja map[string]*erp.Customer
	saved   []*erp.Customer
}

func newStubCustomerStore() *stubCustomerStore {
	return &stubCustomerStore{byName: map[string]*erp.Customer{}, byNinja: map[string]*erp.Customer{}}
}

func (s *stubCustomerStore) add(c *erp.Customer) {
	s.byName[c.Name] = c
	if c.NinjaID != "" {
		s.byNinja[c.NinjaID] = c
	}
}

func (s *stubCustomerStore) FindByName(_ context.Context, name string) (*erp.Customer, error) {
	if c, ok := s.byName[name]; ok {
		return c, nil
	}
	return nil, erp.ErrCustomerNotFound
}

func (s *stubCustomerStore) FindByNinjaID(_ context.Context, ninjaID string) (*erp.Customer, error) {
	if c, ok := s.byNinja[ninjaID]; ok {
		return c, nil
	}
	return nil, erp.ErrCustomerNotFound
}

func (s *stubCustomerStore) FindByCompany(_ context.Context, _ string) ([]erp.Customer, error) {
	return nil, nil
}

func (s *stubCustomerStore) Save(_ context.Context, customer *erp.Customer) error {
	s.saved = append(s.saved, customer)
	s.add(customer)
	return nil
}

var _ erp.CustomerStore = (*stubCustomerStore)(nil)

type stubAddressStore struct {
	addresses []erp.Address
	saved     []*erp.Address
}

func (s *stubAddressStore) FindByCustomer(_ context.Context, _ uuid.UUID) ([]erp.Address, error) {
	return s.addresses, nil
}

func (s *stubAddressStore) Save(_ context.Context, address *erp.Address) error {
	s.saved = append(s.saved, address)
	for i := range s.addresses {
		if s.addresses[i].ID == address.ID {
			s.addresses[i] = *address
			return nil
		}
	}
	s.addresses = append(s.addresses, *address)
	return nil
}

type stubContactStore struct {
	contacts []erp.Contact
	saved    []*erp.Contact
}

func (s *stubContactStore) FindByCustomer(_ context.Context, _ uuid.UUID) ([]erp.Contact, error) {
	return s.contacts, nil
}

func (s *stubContactStore) FindByNinjaContactID(_ context.Context, ninjaContactID string) (*erp.Contact, error) {
	for i := range s.contacts {
		if s.contacts[i].NinjaContactID == ninjaContactID {
			return &s.contacts[i], nil
		}
	}
	return nil, erp.ErrContactNotFound
}

func (s *stubContactStore) Save(_ context.Context, contact *erp.Contact) error {
	s.saved = append(s.saved, contact)
	return nil
}

type stubInvoiceStore struct {
	byName  map[string]*erp.SalesInvoice
	byNinja map[string]*erp.SalesInvoice
	saved   []*erp.SalesInvoice
}

func newStubInvoiceStore() *stubInvoiceStore {
	return &stubInvoiceStore{byName: map[string]*erp.SalesInvoice{}, byNinja: map[string]*erp.SalesInvoice{}}
}

func (s *stubInvoiceStore) add(inv *erp.SalesInvoice) {
	s.byName[inv.Name] = inv
	if inv.NinjaID != "" {
		s.byNinja[inv.NinjaID] = inv
	}
}

func (s *stubInvoiceStore) FindByName(_ context.Context, name string) (*erp.SalesInvoice, error) {
	if inv, ok := s.byName[name]; ok {
		return inv, nil
	}
	return nil, erp.ErrInvoiceNotFound
}

func (s *stubInvoiceStore) FindByNinjaID(_ context.Context, ninjaID string) (*erp.SalesInvoice, error) {
	if inv, ok := s.byNinja[ninjaID]; ok {
		return inv, nil
	}
	return nil, erp.ErrInvoiceNotFound
}

func (s *stubInvoiceStore) ExistsByNinjaID(_ context.Context, ninjaID string) (bool, error) {
	_, ok := s.byNinja[ninjaID]
	return ok, nil
}

func (s *stubInvoiceStore) Save(_ context.Context, invoice *erp.SalesInvoice) error {
	s.saved = append(s.saved, invoice)
	s.add(invoice)
	return nil
}

type stubQuotationStore struct {
	byName  map[string]*erp.Quotation
	byNinja map[string]*erp.Quotation
}

func newStubQuotationStore() *stubQuotationStore {
	return &stubQuotationStore{byName: map[string]*erp.Quotation{}, byNinja: map[string]*erp.Quotation{}}
}

func (s *stubQuotationStore) FindByName(_ context.Context, name string) (*erp.Quotation, error) {
	if q, ok := s.byName[name]; ok {
		return q, nil
	}
	return nil, erp.ErrQuotationNotFound
}

func (s *stubQuotationStore) FindByNinjaID(_ context.Context, ninjaID string) (*erp.Quotation, error) {
	if q, ok := s.byNinja[ninjaID]; ok {
		return q, nil
	}
	return nil, erp.ErrQuotationNotFound
}

func (s *stubQuotationStore) ExistsByNinjaID(_ context.Context, ninjaID string) (bool, error) {
	_, ok := s.byNinja[ninjaID]
	return ok, nil
}

func (s *stubQuotationStore) Save(_ context.Context, quotation *erp.Quotation) error {
	s.byName[quotation.Name] = quotation
	if quotation.NinjaID != "" {
		s.byNinja[quotation.NinjaID] = quotation
	}
	return nil
}

type stubPaymentStore struct {
	byName  map[string]*erp.PaymentEntry
	byNinja map[string]*erp.PaymentEntry
}

func newStubPaymentStore() *stubPaymentStore {
	return &stubPaymentStore{byName: map[string]*erp.PaymentEntry{}, byNinja: map[string]*erp.PaymentEntry{}}
}

func (s *stubPaymentStore) FindByName(_ context.Context, name string) (*erp.PaymentEntry, error) {
	if p, ok := s.byName[name]; ok {
		return p, nil
	}
	return nil, erp.ErrPaymentNotFound
}

func (s *stubPaymentStore) FindByNinjaID(_ context.Context, ninjaID string) (*erp.PaymentEntry, error) {
	if p, ok := s.byNinja[ninjaID]; ok {
		return p, nil
	}
	return nil, erp.ErrPaymentNotFound
}

func (s *stubPaymentStore) ExistsByNinjaID(_ context.Context, ninjaID string) (bool, error) {
	_, ok := s.byNinja[ninjaID]
	return ok, nil
}

func (s *stubPaymentStore) Save(_ context.Context, payment *erp.PaymentEntry) error {
	s.byName[payment.Name] = payment
	if payment.NinjaID != "" {
		s.byNinja[payment.NinjaID] = payment
	}
	return nil
}

type stubNotifier struct {
	failures []*syncdomain.LogEntry
	reports  []*syncdomain.LogStats
}

func (s *stubNotifier) NotifyFailure(_ context.Context, entry *syncdomain.LogEntry) error {
	s.failures = append(s.failures, entry)
	return nil
}

func (s *stubNotifier) SendReport(_ context.Context, stats *syncdomain.LogStats) error {
	s.reports = append(s.reports, stats)
	return nil
}

var _ syncdomain.Notifier = (*stubNotifier)(nil)

type stubLogRepo struct {
	entries []*syncdomain.LogEntry
}

func (s *stubLogRepo) Create(_ context.Context, entry *syncdomain.LogEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubLogRepo) Update(_ context.Context, _ *syncdomain.LogEntry) error { return nil }

func (s *stubLogRepo) FindByID(_ context.Context, _ uuid.UUID) (*syncdomain.LogEntry, error) {
	return nil, syncdomain.ErrLogEntryNotFound
}

func (s *stubLogRepo) ListRecent(_ context.Context, _ syncdomain.LogFilter) ([]syncdomain.LogEntry, error) {
	return nil, nil
}

func (s *stubLogRepo) Stats(_ context.Context, _ time.Time) (*syncdomain.LogStats, error) {
	return &syncdomain.LogStats{}, nil
}

func (s *stubLogRepo) PruneOlderThan(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

var _ syncdomain.LogRepository = (*stubLogRepo)(nil)

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type orchestratorHarness struct {
	orchestrator *Orchestrator
	customers    *stubCustomerStore
	addresses    *stubAddressStore
	contacts     *stubContactStore
	invoices     *stubInvoiceStore
	items        *stubItemStore
	payments     *stubPaymentStore
	logs         *stubLogRepo
	notifier     *stubNotifier
}

func newOrchestratorHarness(t *testing.T, handler http.Handler) *orchestratorHarness {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	mapping := mustMapping(t, "Acme GmbH", "co_a")
	mapping.MarkDefault()
	mappings := &stubMappingRepo{mappings: []syncdomain.CompanyMapping{mapping}}

	credentials := &stubCredentialRepo{credentials: map[string]*syncdomain.Credential{
		"co_a": {
			ID:             uuid.New(),
			NinjaCompanyID: "co_a",
			BaseURL:        server.URL,
			APIToken:       "test-token",
			Enabled:        true,
		},
	}}

	h := &orchestratorHarness{
		customers: newStubCustomerStore(),
		addresses: &stubAddressStore{},
		contacts:  &stubContactStore{},
		invoices:  newStubInvoiceStore(),
		items:     newStubItemStore(),
		payments:  newStubPaymentStore(),
		logs:      &stubLogRepo{},
		notifier:  &stubNotifier{},
	}

	fields := NewFieldMapper(DefaultLookups())
	h.orchestrator = NewOrchestrator(
		NewCompanyMapper(mappings, nil),
		fields,
		NewItemCodeResolver(h.items, fields),
		invoiceninja.NewFactory(credentials, nil),
		allDirectives(),
		Stores{
			Customers:  h.customers,
			Addresses:  h.addresses,
			Contacts:   h.contacts,
			Items:      h.items,
			Invoices:   h.invoices,
			Quotations: newStubQuotationStore(),
			Payments:   h.payments,
		},
		h.logs,
		nil,
		h.notifier,
		nil,
	)
	return h
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{"data": data})
	require.NoError(t, err)
}

func writeListEnvelope(t *testing.T, w http.ResponseWriter, next string, data ...any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"data": data,
		"meta": map[string]any{"pagination": map[string]any{"links": map[string]any{"next": next}}},
	})
	require.NoError(t, err)
}

// ---------------------------------------------------------------------------
// Outbound Tests
// ---------------------------------------------------------------------------

func TestOrchestratorSyncDocumentOutCreatesClient(t *testing.T) {
	var gotToken string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/clients", r.URL.Path)
		gotToken = r.Header.Get("X-API-TOKEN")
		writeEnvelope(t, w, map[string]any{
			"id":   "cli_1",
			"name": "Acme Trading GmbH",
			"contacts": []map[string]any{
				{"id": "ct_1", "email": "eva@acme.example", "is_primary": true},
			},
		})
	})
	h := newOrchestratorHarness(t, handler)

	customerID := uuid.New()
	h.customers.add(&erp.Customer{
		ID:           customerID,
		Name:         "CUST-0001",
		CustomerName: "Acme Trading GmbH",
		Company:      "Acme GmbH",
	})
	h.contacts.contacts = []erp.Contact{
		{ID: uuid.New(), CustomerID: customerID, Email: "eva@acme.example", IsPrimary: true},
	}

	err := h.orchestrator.SyncDocumentOut(context.Background(), syncdomain.EntityTypeCustomer, "CUST-0001")
	require.NoError(t, err)

	assert.Equal(t, "test-token", gotToken)

	customer := h.customers.byName["CUST-0001"]
	assert.Equal(t, "cli_1", customer.NinjaID)
	assert.Equal(t, "co_a", customer.NinjaCompanyID)
	assert.Equal(t, syncdomain.DocStatusSynced.String(), customer.SyncStatus)

	require.Len(t, h.contacts.saved, 1)
	assert.Equal(t, "ct_1", h.contacts.saved[0].NinjaContactID)

	require.Len(t, h.logs.entries, 1)
	entry := h.logs.entries[0]
	assert.Equal(t, syncdomain.LogStatusSuccess, entry.Status)
	assert.Equal(t, "cli_1", entry.RemoteID)
	assert.Equal(t, "Acme GmbH", entry.ERPCompany)
}

func TestOrchestratorSyncDocumentOutUpdatesLinkedClient(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/clients/cli_9", r.URL.Path)
		writeEnvelope(t, w, map[string]any{"id": "cli_9", "name": "Acme Trading GmbH"})
	})
	h := newOrchestratorHarness(t, handler)

	h.customers.add(&erp.Customer{
		ID:           uuid.New(),
		Name:         "CUST-0009",
		CustomerName: "Acme Trading GmbH",
		Company:      "Acme GmbH",
		NinjaID:      "cli_9",
	})

	err := h.orchestrator.SyncDocumentOut(context.Background(), syncdomain.EntityTypeCustomer, "CUST-0009")
	require.NoError(t, err)

	require.Len(t, h.logs.entries, 1)
	assert.Equal(t, syncdomain.LogStatusSuccess, h.logs.entries[0].Status)
}

func TestOrchestratorSyncDocumentOutGatedOff(t *testing.T) {
	h := newOrchestratorHarness(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("gated sync must not reach the remote")
	}))

	gated := allDirectives()
	gated.set[syncdomain.EntityTypeCustomer] = syncdomain.Directive{
		EntityType: syncdomain.EntityTypeCustomer, Enabled: false,
	}
	h.orchestrator.directives = gated

	err := h.orchestrator.SyncDocumentOut(context.Background(), syncdomain.EntityTypeCustomer, "CUST-0001")
	assert.ErrorIs(t, err, syncdomain.ErrEntityTypeDisabled)
	assert.Empty(t, h.logs.entries, "gated attempts leave no log entry")
}

func TestOrchestratorSyncDocumentOutFailureNotifies(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	h := newOrchestratorHarness(t, handler)

	h.customers.add(&erp.Customer{
		ID:           uuid.New(),
		Name:         "CUST-0001",
		CustomerName: "Acme Trading GmbH",
		Company:      "Acme GmbH",
	})

	err := h.orchestrator.SyncDocumentOut(context.Background(), syncdomain.EntityTypeCustomer, "CUST-0001")
	require.ErrorIs(t, err, syncdomain.ErrRequestFailed)

	require.Len(t, h.logs.entries, 1)
	assert.Equal(t, syncdomain.LogStatusFailed, h.logs.entries[0].Status)

	require.Len(t, h.notifier.failures, 1, "failed attempts must raise a notification")
	assert.Equal(t, "CUST-0001", h.notifier.failures[0].DocumentRef)
	assert.Empty(t, h.notifier.reports)
}

// ---------------------------------------------------------------------------
// Inbound Tests
// ---------------------------------------------------------------------------

func TestOrchestratorSyncRecordInLandsClient(t *testing.T) {
	h := newOrchestratorHarness(t, http.NewServeMux())

	raw := json.RawMessage(`{
		"id": "cli_5",
		"name": "Northwind Traders Inc",
		"address1": "1 Main St",
		"city": "Seattle",
		"contacts": [{"id": "ct_5", "email": "ops@northwind.example", "is_primary": true}]
	}`)

	err := h.orchestrator.SyncRecordIn(context.Background(), syncdomain.EntityTypeCustomer, "co_a", raw)
	require.NoError(t, err)

	customer := h.customers.byNinja["cli_5"]
	require.NotNil(t, customer)
	assert.Equal(t, "Acme GmbH", customer.Company)
	require.Len(t, h.addresses.saved, 1)
	assert.Equal(t, erp.AddressTypeBilling, h.addresses.saved[0].AddressType)
	require.Len(t, h.contacts.saved, 1)
	assert.Equal(t, "ct_5", h.contacts.saved[0].NinjaContactID)

	require.Len(t, h.logs.entries, 1)
	assert.Equal(t, syncdomain.LogStatusSuccess, h.logs.entries[0].Status)
	assert.Equal(t, "cli_5", h.logs.entries[0].RemoteID)
}

func TestOrchestratorSyncRecordInClientTwiceKeepsOneAddress(t *testing.T) {
	h := newOrchestratorHarness(t, http.NewServeMux())

	raw := json.RawMessage(`{
		"id": "cli_9",
		"name": "Bob Smith",
		"address1": "1 Main St",
		"city": "Springfield",
		"postal_code": "62701"
	}`)

	require.NoError(t, h.orchestrator.SyncRecordIn(context.Background(), syncdomain.EntityTypeCustomer, "co_a", raw))
	require.Len(t, h.addresses.addresses, 1)
	firstID := h.addresses.addresses[0].ID

	require.NoError(t, h.orchestrator.SyncRecordIn(context.Background(), syncdomain.EntityTypeCustomer, "co_a", raw))

	require.Len(t, h.addresses.addresses, 1, "repeated inbound sync must update the billing address in place")
	assert.Equal(t, firstID, h.addresses.addresses[0].ID)
	assert.Equal(t, "1 Main St", h.addresses.addresses[0].AddressLine1)
}

func TestOrchestratorSyncRecordInSkipsMirroredInvoice(t *testing.T) {
	h := newOrchestratorHarness(t, http.NewServeMux())

	h.invoices.add(&erp.SalesInvoice{ID: uuid.New(), Name: "0042", NinjaID: "inv_1"})

	raw := json.RawMessage(`{"id": "inv_1", "client_id": "cli_1", "number": "0042"}`)
	err := h.orchestrator.SyncRecordIn(context.Background(), syncdomain.EntityTypeSalesInvoice, "co_a", raw)
	assert.ErrorIs(t, err, syncdomain.ErrAlreadySynced)

	require.Len(t, h.logs.entries, 1)
	assert.Equal(t, syncdomain.LogStatusSkipped, h.logs.entries[0].Status)
}

func TestOrchestratorSyncRecordInUnknownCompany(t *testing.T) {
	h := newOrchestratorHarness(t, http.NewServeMux())

	raw := json.RawMessage(`{"id": "cli_5", "name": "Northwind Traders Inc"}`)
	err := h.orchestrator.SyncRecordIn(context.Background(), syncdomain.EntityTypeCustomer, "co_unmapped", raw)
	assert.ErrorIs(t, err, syncdomain.ErrNoCompanyMapping)
}

// ---------------------------------------------------------------------------
// Remote Deletion Tests
// ---------------------------------------------------------------------------

func TestOrchestratorMarkDeletedRemotely(t *testing.T) {
	h := newOrchestratorHarness(t, http.NewServeMux())

	h.items.add(&erp.Item{ID: uuid.New(), ItemCode: "WIDGET-01", NinjaID: "prod_1", SyncStatus: syncdomain.DocStatusSynced.String()})

	err := h.orchestrator.MarkDeletedRemotely(context.Background(), syncdomain.EntityTypeItem, "prod_1")
	require.NoError(t, err)

	item := h.items.byNinja["prod_1"]
	assert.Equal(t, syncdomain.DocStatusDeletedRemotely.String(), item.SyncStatus)

	t.Run("Unknown remote record", func(t *testing.T) {
		err := h.orchestrator.MarkDeletedRemotely(context.Background(), syncdomain.EntityTypeItem, "prod_missing")
		assert.ErrorIs(t, err, erp.ErrItemNotFound)
	})
}

// ---------------------------------------------------------------------------
// Pull Tests
// ---------------------------------------------------------------------------

func TestOrchestratorPullEntityForCompany(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/products", r.URL.Path)
		writeListEnvelope(t, w, "",
			map[string]any{"id": "prod_1", "product_key": "WIDGET-01", "price": "9.5"},
			map[string]any{"id": "prod_2", "product_key": "GADGET-02", "price": "4.0"},
		)
	})
	h := newOrchestratorHarness(t, handler)

	result, err := h.orchestrator.PullEntityForCompany(context.Background(), syncdomain.EntityTypeItem, "co_a")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 2, result.Synced)
	assert.Zero(t, result.Failed)

	assert.NotNil(t, h.items.byNinja["prod_1"])
	assert.NotNil(t, h.items.byNinja["prod_2"])
}

func TestOrchestratorPullEntityForCompanyWalksPages(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/products", r.URL.Path)
		switch r.URL.Query().Get("page") {
		case "", "1":
			writeListEnvelope(t, w, "/api/v1/products?page=2",
				map[string]any{"id": "prod_1", "product_key": "WIDGET-01", "price": "9.5"},
				map[string]any{"id": "prod_2", "product_key": "GADGET-02", "price": "4.0"},
			)
		case "2":
			writeListEnvelope(t, w, "",
				map[string]any{"id": "prod_3", "product_key": "SPROCKET-03", "price": "2.5"},
			)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})
	h := newOrchestratorHarness(t, handler)

	result, err := h.orchestrator.PullEntityForCompany(context.Background(), syncdomain.EntityTypeItem, "co_a")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Fetched)
	assert.Equal(t, 3, result.Synced)
	assert.Zero(t, result.Failed)

	assert.NotNil(t, h.items.byNinja["prod_1"])
	assert.NotNil(t, h.items.byNinja["prod_2"])
	assert.NotNil(t, h.items.byNinja["prod_3"])
}

func TestOrchestratorFetchEntityByID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/products/prod_1", r.URL.Path)
		writeEnvelope(t, w, map[string]any{"id": "prod_1", "product_key": "WIDGET-01"})
	})
	h := newOrchestratorHarness(t, handler)

	raw, err := h.orchestrator.FetchEntityByID(context.Background(), "co_a", syncdomain.EntityTypeItem, "prod_1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"prod_1"`)
}
