package invoiceninja

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// maxResponseSize is the maximum allowed response size from the API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// apiBasePath is prefixed to every collection path.
const apiBasePath = "/api/v1"

// Client is a typed HTTP client for one Invoice Ninja company. There is no
// retry layer: a failed request is reported once and the caller decides.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client from validated connection settings.
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// CompanyID returns the remote company this client is scoped to.
func (c *Client) CompanyID() string {
	return c.config.CompanyID
}

// ---------------------------------------------------------------------------
// Request plumbing
// ---------------------------------------------------------------------------

// ListOptions controls collection requests.
type ListOptions struct {
	// Page is the page number (1-indexed)
	Page int
	// PerPage is the page size
	PerPage int
	// Include lists related resources to embed
	Include string
	// UpdatedSince filters to records updated at or after the timestamp
	UpdatedSince *time.Time
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Include != "" {
		v.Set("include", o.Include)
	}
	if o.UpdatedSince != nil {
		v.Set("updated_at", strconv.FormatInt(o.UpdatedSince.Unix(), 10))
	}
	return v
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.config.BaseURL + apiBasePath + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("invoiceninja: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("invoiceninja: failed to create request: %w", err)
	}

	req.Header.Set("X-API-TOKEN", c.config.APIToken)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Content-Type", "application/json")
	if c.config.CompanyID != "" {
		req.Header.Set("X-API-COMPANY", c.config.CompanyID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("invoice ninja request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", syncdomain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("invoiceninja: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("invoice ninja request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: HTTP %d", syncdomain.ErrRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}

func (c *Client) getList(ctx context.Context, path string, opts ListOptions) ([]json.RawMessage, *Pagination, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, opts.values(), nil)
	if err != nil {
		return nil, nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
	}

	var pagination *Pagination
	if envelope.Meta != nil {
		pagination = envelope.Meta.Pagination
	}
	return envelope.Data, pagination, nil
}

func (c *Client) getSingle(ctx context.Context, path string, include string) (json.RawMessage, error) {
	query := url.Values{}
	if include != "" {
		query.Set("include", include)
	}
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var envelope singleEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
	}
	return envelope.Data, nil
}

func (c *Client) write(ctx context.Context, method, path string, payload, out any) error {
	body, err := c.doRequest(ctx, method, path, nil, payload)
	if err != nil {
		return err
	}

	var envelope singleEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Raw collection access
// ---------------------------------------------------------------------------

// ListRaw fetches one page of a collection without decoding the records.
// The fetch preview and the pull loop both run through this.
func (c *Client) ListRaw(ctx context.Context, collection syncdomain.RemoteCollection, opts ListOptions) ([]json.RawMessage, *Pagination, error) {
	if opts.Include == "" {
		opts.Include = collection.Include
	}
	return c.getList(ctx, "/"+collection.Path, opts)
}

// GetRaw fetches one record of a collection without decoding it.
func (c *Client) GetRaw(ctx context.Context, collection syncdomain.RemoteCollection, id string) (json.RawMessage, error) {
	return c.getSingle(ctx, "/"+collection.Path+"/"+id, collection.Include)
}

// ---------------------------------------------------------------------------
// Client operations
// ---------------------------------------------------------------------------

// ListClients fetches one page of clients with contacts embedded.
func (c *Client) ListClients(ctx context.Context, opts ListOptions) ([]ClientRecord, *Pagination, error) {
	if opts.Include == "" {
		opts.Include = "contacts,group_settings"
	}
	raw, pagination, err := c.getList(ctx, "/clients", opts)
	if err != nil {
		return nil, nil, err
	}
	records, err := decodeRecords[ClientRecord](raw)
	return records, pagination, err
}

// GetClient fetches a single client.
func (c *Client) GetClient(ctx context.Context, id string) (*ClientRecord, error) {
	raw, err := c.getSingle(ctx, "/clients/"+id, "contacts,group_settings")
	if err != nil {
		return nil, err
	}
	return decodeRecord[ClientRecord](raw)
}

// CreateClient creates a client and returns the stored record.
func (c *Client) CreateClient(ctx context.Context, record *ClientRecord) (*ClientRecord, error) {
	var out ClientRecord
	if err := c.write(ctx, http.MethodPost, "/clients", record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateClient updates a client and returns the stored record.
func (c *Client) UpdateClient(ctx context.Context, id string, record *ClientRecord) (*ClientRecord, error) {
	var out ClientRecord
	if err := c.write(ctx, http.MethodPut, "/clients/"+id, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Invoice operations
// ---------------------------------------------------------------------------

// ListInvoices fetches one page of invoices.
func (c *Client) ListInvoices(ctx context.Context, opts ListOptions) ([]InvoiceRecord, *Pagination, error) {
	if opts.Include == "" {
		opts.Include = "client,line_items"
	}
	raw, pagination, err := c.getList(ctx, "/invoices", opts)
	if err != nil {
		return nil, nil, err
	}
	records, err := decodeRecords[InvoiceRecord](raw)
	return records, pagination, err
}

// GetInvoice fetches a single invoice.
func (c *Client) GetInvoice(ctx context.Context, id string) (*InvoiceRecord, error) {
	raw, err := c.getSingle(ctx, "/invoices/"+id, "client,line_items")
	if err != nil {
		return nil, err
	}
	return decodeRecord[InvoiceRecord](raw)
}

// CreateInvoice creates an invoice and returns the stored record.
func (c *Client) CreateInvoice(ctx context.Context, record *InvoiceRecord) (*InvoiceRecord, error) {
	var out InvoiceRecord
	if err := c.write(ctx, http.MethodPost, "/invoices", record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInvoice updates an invoice and returns the stored record.
func (c *Client) UpdateInvoice(ctx context.Context, id string, record *InvoiceRecord) (*InvoiceRecord, error) {
	var out InvoiceRecord
	if err := c.write(ctx, http.MethodPut, "/invoices/"+id, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Quote operations
// ---------------------------------------------------------------------------

// ListQuotes fetches one page of quotes.
func (c *Client) ListQuotes(ctx context.Context, opts ListOptions) ([]InvoiceRecord, *Pagination, error) {
	if opts.Include == "" {
		opts.Include = "client,line_items"
	}
	raw, pagination, err := c.getList(ctx, "/quotes", opts)
	if err != nil {
		return nil, nil, err
	}
	records, err := decodeRecords[InvoiceRecord](raw)
	return records, pagination, err
}

// GetQuote fetches a single quote.
func (c *Client) GetQuote(ctx context.Context, id string) (*InvoiceRecord, error) {
	raw, err := c.getSingle(ctx, "/quotes/"+id, "client,line_items")
	if err != nil {
		return nil, err
	}
	return decodeRecord[InvoiceRecord](raw)
}

// CreateQuote creates a quote and returns the stored record.
func (c *Client) CreateQuote(ctx context.Context, record *InvoiceRecord) (*InvoiceRecord, error) {
	var out InvoiceRecord
	if err := c.write(ctx, http.MethodPost, "/quotes", record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuote updates a quote and returns the stored record.
func (c *Client) UpdateQuote(ctx context.Context, id string, record *InvoiceRecord) (*InvoiceRecord, error) {
	var out InvoiceRecord
	if err := c.write(ctx, http.MethodPut, "/quotes/"+id, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Product operations
// ---------------------------------------------------------------------------

// ListProducts fetches one page of products.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]ProductRecord, *Pagination, error) {
	raw, pagination, err := c.getList(ctx, "/products", opts)
	if err != nil {
		return nil, nil, err
	}
	records, err := decodeRecords[ProductRecord](raw)
	return records, pagination, err
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id string) (*ProductRecord, error) {
	raw, err := c.getSingle(ctx, "/products/"+id, "")
	if err != nil {
		return nil, err
	}
	return decodeRecord[ProductRecord](raw)
}

// CreateProduct creates a product and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, record *ProductRecord) (*ProductRecord, error) {
	var out ProductRecord
	if err := c.write(ctx, http.MethodPost, "/products", record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct updates a product and returns the stored record.
func (c *Client) UpdateProduct(ctx context.Context, id string, record *ProductRecord) (*ProductRecord, error) {
	var out ProductRecord
	if err := c.write(ctx, http.MethodPut, "/products/"+id, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Payment operations
// ---------------------------------------------------------------------------

// ListPayments fetches one page of payments.
func (c *Client) ListPayments(ctx context.Context, opts ListOptions) ([]PaymentRecord, *Pagination, error) {
	if opts.Include == "" {
		opts.Include = "invoice,client"
	}
	raw, pagination, err := c.getList(ctx, "/payments", opts)
	if err != nil {
		return nil, nil, err
	}
	records, err := decodeRecords[PaymentRecord](raw)
	return records, pagination, err
}

// GetPayment fetches a single payment.
func (c *Client) GetPayment(ctx context.Context, id string) (*PaymentRecord, error) {
	raw, err := c.getSingle(ctx, "/payments/"+id, "invoice,client")
	if err != nil {
		return nil, err
	}
	return decodeRecord[PaymentRecord](raw)
}

// CreatePayment creates a payment and returns the stored record.
func (c *Client) CreatePayment(ctx context.Context, record *PaymentRecord) (*PaymentRecord, error) {
	var out PaymentRecord
	if err := c.write(ctx, http.MethodPost, "/payments", record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Company operations
// ---------------------------------------------------------------------------

// ListCompanies fetches the companies visible to the token. Used by company
// discovery with master credentials.
func (c *Client) ListCompanies(ctx context.Context) ([]CompanyRecord, error) {
	raw, _, err := c.getList(ctx, "/companies", ListOptions{})
	if err != nil {
		return nil, err
	}
	return decodeRecords[CompanyRecord](raw)
}

// ---------------------------------------------------------------------------
// Connection test
// ---------------------------------------------------------------------------

// TestConnection verifies the credentials against the ping endpoint. It uses
// the short timeout so connection tests stay responsive.
func (c *Client) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.config.PingTimeoutSeconds)*time.Second)
	defer cancel()

	_, err := c.doRequest(ctx, http.MethodGet, "/ping", nil, nil)
	return err
}

// ---------------------------------------------------------------------------
// Decoding helpers
// ---------------------------------------------------------------------------

func decodeRecord[T any](raw json.RawMessage) (*T, error) {
	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
	}
	return &record, nil
}

func decodeRecords[T any](raw []json.RawMessage) ([]T, error) {
	records := make([]T, 0, len(raw))
	for _, r := range raw {
		var record T
		if err := json.Unmarshal(r, &record); err != nil {
			return nil, fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
		}
		records = append(records, record)
	}
	return records, nil
}
