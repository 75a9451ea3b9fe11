package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/novizna/ninjasync/internal/domain/erp"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/invoiceninja"
)

// DirectiveProvider supplies the current per-entity-type sync policy.
type DirectiveProvider interface {
	Directives() syncdomain.DirectiveSet
}

// Stores bundles the local document stores the orchestrator writes through.
type Stores struct {
	Customers  erp.CustomerStore
	Addresses  erp.AddressStore
	Contacts   erp.ContactStore
	Items      erp.ItemStore
	Invoices   erp.InvoiceStore
	Quotations erp.QuotationStore
	Payments   erp.PaymentStore
}

// ---------------------------------------------------------------------------
// Orchestrator
// ---------------------------------------------------------------------------

// Orchestrator drives document synchronization in both directions. Every
// attempt passes two gates (entity type enabled, direction allowed) before
// any mapping or network work happens, and every attempt leaves a log entry.
type Orchestrator struct {
	companies  *CompanyMapper
	fields     *FieldMapper
	itemCodes  *ItemCodeResolver
	clients    *invoiceninja.Factory
	directives DirectiveProvider
	stores     Stores
	logs       syncdomain.LogRepository
	locker     syncdomain.DocumentLocker
	notifier   syncdomain.Notifier
	logger     *zap.Logger
}

// NewOrchestrator wires the sync orchestrator.
func NewOrchestrator(
	companies *CompanyMapper,
	fields *FieldMapper,
	itemCodes *ItemCodeResolver,
	clients *invoiceninja.Factory,
	directives DirectiveProvider,
	stores Stores,
	logs syncdomain.LogRepository,
	locker syncdomain.DocumentLocker,
	notifier syncdomain.Notifier,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		companies:  companies,
		fields:     fields,
		itemCodes:  itemCodes,
		clients:    clients,
		directives: directives,
		stores:     stores,
		logs:       logs,
		locker:     locker,
		notifier:   notifier,
		logger:     logger,
	}
}

var _ syncdomain.EntityFetcher = (*Orchestrator)(nil)

// ---------------------------------------------------------------------------
// Outbound sync
// ---------------------------------------------------------------------------

// SyncDocumentOut pushes one local document to Invoice Ninja. A linked
// document is updated in place; an unlinked one is created under a
// per-document lock and the new remote ID is stamped back.
func (o *Orchestrator) SyncDocumentOut(ctx context.Context, entityType syncdomain.EntityType, documentRef string) error {
	if err := o.directives.Directives().Check(entityType, syncdomain.DirectionOutbound); err != nil {
		o.logger.Debug("outbound sync gated off",
			zap.String("entity_type", entityType.String()),
			zap.String("document", documentRef))
		return err
	}

	entry := syncdomain.NewLogEntry(entityType, syncdomain.DirectionOutbound, documentRef)
	if err := o.logs.Create(ctx, entry); err != nil {
		return fmt.Errorf("orchestrator: opening log entry: %w", err)
	}

	remoteID, err := o.pushDocument(ctx, entityType, documentRef, entry)
	o.closeEntry(ctx, entry, remoteID, err)
	return err
}

func (o *Orchestrator) pushDocument(ctx context.Context, entityType syncdomain.EntityType, documentRef string, entry *syncdomain.LogEntry) (string, error) {
	switch entityType {
	case syncdomain.EntityTypeCustomer:
		return o.pushCustomer(ctx, documentRef, entry)
	case syncdomain.EntityTypeSalesInvoice:
		return o.pushInvoice(ctx, documentRef, entry)
	case syncdomain.EntityTypeQuotation:
		return o.pushQuotation(ctx, documentRef, entry)
	case syncdomain.EntityTypeItem:
		return o.pushItem(ctx, documentRef, entry)
	case syncdomain.EntityTypePaymentEntry:
		return o.pushPayment(ctx, documentRef, entry)
	default:
		return "", syncdomain.ErrUnknownEntityType
	}
}

func (o *Orchestrator) pushCustomer(ctx context.Context, name string, entry *syncdomain.LogEntry) (string, error) {
	customer, err := o.stores.Customers.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	sctx, err := o.companies.BuildContext(ctx, customer.Company, syncdomain.EntityTypeCustomer, syncdomain.DirectionOutbound)
	if err != nil {
		return "", err
	}
	o.stampEntry(entry, sctx)

	addresses, err := o.stores.Addresses.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return "", err
	}
	contacts, err := o.stores.Contacts.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return "", err
	}
	record, err := o.fields.CustomerToClient(customer, addresses, contacts)
	if err != nil {
		return "", err
	}

	client, err := o.clients.ForCompany(ctx, sctx.NinjaCompanyID)
	if err != nil {
		return "", err
	}

	if customer.NinjaID != "" {
		stored, err := client.UpdateClient(ctx, customer.NinjaID, record)
		if err != nil {
			return "", err
		}
		o.stampContacts(ctx, contacts, stored.Contacts)
		return stored.ID, nil
	}

	lock, err := o.acquireLock(ctx, syncdomain.EntityTypeCustomer, name)
	if err != nil {
		return "", err
	}
	defer o.releaseLock(ctx, lock)

	// Re-read under the lock: another worker may have created the link.
	customer, err = o.stores.Customers.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	if customer.NinjaID != "" {
		return customer.NinjaID, syncdomain.ErrAlreadySynced
	}

	stored, err := client.CreateClient(ctx, record)
	if err != nil {
		return "", err
	}
	customer.NinjaID = stored.ID
	customer.NinjaCompanyID = sctx.NinjaCompanyID
	customer.SyncStatus = syncdomain.DocStatusSynced.String()
	if err := o.stores.Customers.Save(ctx, customer); err != nil {
		return "", err
	}
	o.stampContacts(ctx, contacts, stored.Contacts)
	return stored.ID, nil
}

// stampContacts writes remote contact IDs back onto matched local contacts.
func (o *Orchestrator) stampContacts(ctx context.Context, local []erp.Contact, remote []invoiceninja.ContactRecord) {
	for _, rc := range remote {
		match := o.fields.MatchContact(rc, local)
		if match == nil || match.NinjaContactID == rc.ID {
			continue
		}
		match.NinjaContactID = rc.ID
		if err := o.stores.Contacts.Save(ctx, match); err != nil {
			o.logger.Warn("failed to stamp contact link", zap.Error(err))
		}
	}
}

func (o *Orchestrator) pushInvoice(ctx context.Context, name string, entry *syncdomain.LogEntry) (string, error) {
	invoice, err := o.stores.Invoices.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	sctx, err := o.companies.BuildContext(ctx, invoice.Company, syncdomain.EntityTypeSalesInvoice, syncdomain.DirectionOutbound)
	if err != nil {
		return "", err
	}
	o.stampEntry(entry, sctx)

	customer, err := o.stores.Customers.FindByName(ctx, invoice.Customer)
	if err != nil {
		return "", err
	}
	record, err := o.fields.InvoiceToRemote(invoice, customer.NinjaID)
	if err != nil {
		return "", err
	}

	client, err := o.clients.ForCompany(ctx, sctx.NinjaCompanyID)
	if err != nil {
		return "", err
	}

	if invoice.NinjaID != "" {
		stored, err := client.UpdateInvoice(ctx, invoice.NinjaID, record)
		if err != nil {
			return "", err
		}
		return stored.ID, nil
	}

	lock, err := o.acquireLock(ctx, syncdomain.EntityTypeSalesInvoice, name)
	if err != nil {
		return "", err
	}
	defer o.releaseLock(ctx, lock)

	invoice, err = o.stores.Invoices.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	if invoice.NinjaID != "" {
		return invoice.NinjaID, syncdomain.ErrAlreadySynced
	}

	stored, err := client.CreateInvoice(ctx, record)
	if err != nil {
		return "", err
	}
	invoice.NinjaID = stored.ID
	invoice.NinjaCompanyID = sctx.NinjaCompanyID
	invoice.SyncStatus = syncdomain.DocStatusSynced.String()
	if err := o.stores.Invoices.Save(ctx, invoice); err != nil {
		return "", err
	}
	return stored.ID, nil
}

func (o *Orchestrator) pushQuotation(ctx context.Context, name string, entry *syncdomain.LogEntry) (string, error) {
	quotation, err := o.stores.Quotations.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	sctx, err := o.companies.BuildContext(ctx, quotation.Company, syncdomain.EntityTypeQuotation, syncdomain.DirectionOutbound)
	if err != nil {
		return "", err
	}
	o.stampEntry(entry, sctx)

	customer, err := o.stores.Customers.FindByName(ctx, quotation.Customer)
	if err != nil {
		return "", err
	}
	record, err := o.fields.QuotationToRemote(quotation, customer.NinjaID)
	if err != nil {
		return "", err
	}

	client, err := o.clients.ForCompany(ctx, sctx.NinjaCompanyID)
	if err != nil {
		return "", err
	}

	if quotation.NinjaID != "" {
		stored, err := client.UpdateQuote(ctx, quotation.NinjaID, record)
		if err != nil {
			return "", err
		}
		return stored.ID, nil
	}

	lock, err := o.acquireLock(ctx, syncdomain.EntityTypeQuotation, name)
	if err != nil {
		return "", err
	}
	defer o.releaseLock(ctx, lock)

	quotation, err = o.stores.Quotations.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	if quotation.NinjaID != "" {
		return quotation.NinjaID, syncdomain.ErrAlreadySynced
	}

	stored, err := client.CreateQuote(ctx, record)
	if err != nil {
		return "", err
	}
	quotation.NinjaID = stored.ID
	quotation.NinjaCompanyID = sctx.NinjaCompanyID
	quotation.SyncStatus = syncdomain.DocStatusSynced.String()
	if err := o.stores.Quotations.Save(ctx, quotation); err != nil {
		return "", err
	}
	return stored.ID, nil
}

func (o *Orchestrator) pushItem(ctx context.Context, itemCode string, entry *syncdomain.LogEntry) (string, error) {
	item, err := o.stores.Items.FindByCode(ctx, itemCode)
	if err != nil {
		return "", err
	}
	// Items carry no company; they route through the default mapping.
	mapping, err := o.companies.ResolveDefault(ctx)
	if err != nil {
		return "", err
	}
	entry.NinjaCompanyID = mapping.NinjaCompanyID
	entry.ERPCompany = mapping.ERPCompany

	record, err := o.fields.ItemToProduct(item)
	if err != nil {
		return "", err
	}

	client, err := o.clients.ForCompany(ctx, mapping.NinjaCompanyID)
	if err != nil {
		return "", err
	}

	if item.NinjaID != "" {
		stored, err := client.UpdateProduct(ctx, item.NinjaID, record)
		if err != nil {
			return "", err
		}
		return stored.ID, nil
	}

	lock, err := o.acquireLock(ctx, syncdomain.EntityTypeItem, itemCode)
	if err != nil {
		return "", err
	}
	defer o.releaseLock(ctx, lock)

	item, err = o.stores.Items.FindByCode(ctx, itemCode)
	if err != nil {
		return "", err
	}
	if item.NinjaID != "" {
		return item.NinjaID, syncdomain.ErrAlreadySynced
	}

	stored, err := client.CreateProduct(ctx, record)
	if err != nil {
		return "", err
	}
	item.NinjaID = stored.ID
	item.NinjaCompanyID = mapping.NinjaCompanyID
	item.SyncStatus = syncdomain.DocStatusSynced.String()
	if err := o.stores.Items.Save(ctx, item); err != nil {
		return "", err
	}
	return stored.ID, nil
}

func (o *Orchestrator) pushPayment(ctx context.Context, name string, entry *syncdomain.LogEntry) (string, error) {
	payment, err := o.stores.Payments.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	sctx, err := o.companies.BuildContext(ctx, payment.Company, syncdomain.EntityTypePaymentEntry, syncdomain.DirectionOutbound)
	if err != nil {
		return "", err
	}
	o.stampEntry(entry, sctx)

	customer, err := o.stores.Customers.FindByName(ctx, payment.Party)
	if err != nil {
		return "", err
	}

	var invoiceNinjaID string
	if payment.AgainstInvoice != "" {
		invoice, err := o.stores.Invoices.FindByName(ctx, payment.AgainstInvoice)
		if err == nil {
			invoiceNinjaID = invoice.NinjaID
		} else if !errors.Is(err, erp.ErrInvoiceNotFound) {
			return "", err
		}
	}

	record, err := o.fields.PaymentToRemote(payment, customer.NinjaID, invoiceNinjaID)
	if err != nil {
		return "", err
	}

	client, err := o.clients.ForCompany(ctx, sctx.NinjaCompanyID)
	if err != nil {
		return "", err
	}

	if payment.NinjaID != "" {
		return payment.NinjaID, syncdomain.ErrAlreadySynced
	}

	lock, err := o.acquireLock(ctx, syncdomain.EntityTypePaymentEntry, name)
	if err != nil {
		return "", err
	}
	defer o.releaseLock(ctx, lock)

	payment, err = o.stores.Payments.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	if payment.NinjaID != "" {
		return payment.NinjaID, syncdomain.ErrAlreadySynced
	}

	stored, err := client.CreatePayment(ctx, record)
	if err != nil {
		return "", err
	}
	payment.NinjaID = stored.ID
	payment.NinjaCompanyID = sctx.NinjaCompanyID
	payment.SyncStatus = syncdomain.DocStatusSynced.String()
	if err := o.stores.Payments.Save(ctx, payment); err != nil {
		return "", err
	}
	return stored.ID, nil
}

// ---------------------------------------------------------------------------
// Inbound sync
// ---------------------------------------------------------------------------

// SyncRecordIn lands one remote record in the local store. Invoices, quotes
// and payments that are already mirrored are skipped; customers and items
// are updated in place.
func (o *Orchestrator) SyncRecordIn(ctx context.Context, entityType syncdomain.EntityType, ninjaCompanyID string, raw json.RawMessage) error {
	if err := o.directives.Directives().Check(entityType, syncdomain.DirectionInbound); err != nil {
		return err
	}

	sctx, err := o.companies.BuildInboundContext(ctx, ninjaCompanyID, entityType)
	if err != nil {
		return err
	}

	entry := syncdomain.NewLogEntry(entityType, syncdomain.DirectionInbound, "")
	entry.ERPCompany = sctx.ERPCompany
	entry.NinjaCompanyID = sctx.NinjaCompanyID
	if err := o.logs.Create(ctx, entry); err != nil {
		return fmt.Errorf("orchestrator: opening log entry: %w", err)
	}

	remoteID, err := o.landRecord(ctx, entityType, raw, sctx)
	entry.RemoteID = remoteID
	o.closeEntry(ctx, entry, remoteID, err)
	return err
}

func (o *Orchestrator) landRecord(ctx context.Context, entityType syncdomain.EntityType, raw json.RawMessage, sctx *syncdomain.SyncContext) (string, error) {
	switch entityType {
	case syncdomain.EntityTypeCustomer:
		return o.landClient(ctx, raw, sctx)
	case syncdomain.EntityTypeSalesInvoice:
		return o.landInvoice(ctx, raw, sctx)
	case syncdomain.EntityTypeQuotation:
		return o.landQuote(ctx, raw, sctx)
	case syncdomain.EntityTypeItem:
		return o.landProduct(ctx, raw, sctx)
	case syncdomain.EntityTypePaymentEntry:
		return o.landPayment(ctx, raw, sctx)
	default:
		return "", syncdomain.ErrUnknownEntityType
	}
}

func (o *Orchestrator) landClient(ctx context.Context, raw json.RawMessage, sctx *syncdomain.SyncContext) (string, error) {
	var record invoiceninja.ClientRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return "", fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
	}

	existing, err := o.stores.Customers.FindByNinjaID(ctx, record.ID)
	if err != nil && !errors.Is(err, erp.ErrCustomerNotFound) {
		return record.ID, err
	}

	customer, err := o.fields.ClientToCustomer(&record, existing, sctx)
	if err != nil {
		return record.ID, err
	}
	if err := o.stores.Customers.Save(ctx, customer); err != nil {
		return record.ID, err
	}

	existingAddresses, err := o.stores.Addresses.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return record.ID, err
	}
	for _, address := range o.fields.ClientAddresses(&record, customer.ID, existingAddresses) {
		addr := address
		if err := o.stores.Addresses.Save(ctx, &addr); err != nil {
			return record.ID, err
		}
	}
	existingContacts, err := o.stores.Contacts.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return record.ID, err
	}
	for _, contact := range o.fields.ClientContacts(&record, customer.ID, existingContacts) {
		ct := contact
		if err := o.stores.Contacts.Save(ctx, &ct); err != nil {
			return record.ID, err
		}
	}
	return record.ID, nil
}

func (o *Orchestrator) landInvoice(ctx context.Context, raw json.RawMessage, sctx *syncdomain.SyncContext) (string, error) {
	var record invoiceninja.InvoiceRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return "", fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
	}

	exists, err := o.stores.Invoices.ExistsByNinjaID(ctx, record.ID)
	if err != nil {
		return record.ID, err
	}
	if exists {
		return record.ID, syncdomain.ErrAlreadySynced
	}

	customer, err := o.stores.Customers.FindByNinjaID(ctx, record.ClientID)
	if err != nil {
		if errors.Is(err, erp.ErrCustomerNotFound) {
			return record.ID, syncdomain.ErrMissingClientLink
		}
		return record.ID, err
	}

	invoice, err := o.fields.RemoteToInvoice(&record, customer.Name, sctx)
	if err != nil {
		return record.ID, err
	}
	if err := o.resolveLines(ctx, invoice.Items, sctx); err != nil {
		return record.ID, err
	}
	if err := o.stores.Invoices.Save(ctx, invoice); err != nil {
		return record.ID, err
	}
	return record.ID, nil
}

func (o *Orchestrator) landQuote(ctx context.Context, raw json.RawMessage, sctx *syncdomain.SyncContext) (string, error) {
	var record invoiceninja.InvoiceRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return "", fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
	}

	exists, err := o.stores.Quotations.ExistsByNinjaID(ctx, record.ID)
	if err != nil {
		return record.ID, err
	}
	if exists {
		return record.ID, syncdomain.ErrAlreadySynced
	}

	customer, err := o.stores.Customers.FindByNinjaID(ctx, record.ClientID)
	if err != nil {
		if errors.Is(err, erp.ErrCustomerNotFound) {
			return record.ID, syncdomain.ErrMissingClientLink
		}
		return record.ID, err
	}

	quotation, err := o.fields.RemoteToQuotation(&record, customer.Name, sctx)
	if err != nil {
		return record.ID, err
	}
	if err := o.resolveLines(ctx, quotation.Items, sctx); err != nil {
		return record.ID, err
	}
	if err := o.stores.Quotations.Save(ctx, quotation); err != nil {
		return record.ID, err
	}
	return record.ID, nil
}

// resolveLines replaces raw product keys on mapped lines with real item
// codes, creating missing items along the way.
func (o *Orchestrator) resolveLines(ctx context.Context, lines []erp.InvoiceLine, sctx *syncdomain.SyncContext) error {
	for i := range lines {
		item, err := o.itemCodes.EnsureLineItem(ctx, lines[i].ItemCode, lines[i].Description, lines[i].Rate, sctx)
		if err != nil {
			return err
		}
		lines[i].ItemCode = item.ItemCode
		if lines[i].ItemName == "" {
			lines[i].ItemName = item.ItemName
		}
	}
	return nil
}

func (o *Orchestrator) landProduct(ctx context.Context, raw json.RawMessage, sctx *syncdomain.SyncContext) (string, error) {
	var record invoiceninja.ProductRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return "", fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
	}

	item, err := o.itemCodes.EnsureItem(ctx, &record, sctx)
	if err != nil {
		return record.ID, err
	}
	return item.NinjaID, nil
}

func (o *Orchestrator) landPayment(ctx context.Context, raw json.RawMessage, sctx *syncdomain.SyncContext) (string, error) {
	var record invoiceninja.PaymentRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return "", fmt.Errorf("%w: %v", syncdomain.ErrInvalidResponse, err)
	}

	exists, err := o.stores.Payments.ExistsByNinjaID(ctx, record.ID)
	if err != nil {
		return record.ID, err
	}
	if exists {
		return record.ID, syncdomain.ErrAlreadySynced
	}

	customer, err := o.stores.Customers.FindByNinjaID(ctx, record.ClientID)
	if err != nil {
		if errors.Is(err, erp.ErrCustomerNotFound) {
			return record.ID, syncdomain.ErrMissingClientLink
		}
		return record.ID, err
	}

	var againstInvoice string
	if len(record.Invoices) > 0 {
		invoice, err := o.stores.Invoices.FindByNinjaID(ctx, record.Invoices[0].InvoiceID)
		if err == nil {
			againstInvoice = invoice.Name
		} else if !errors.Is(err, erp.ErrInvoiceNotFound) {
			return record.ID, err
		}
	}

	payment, err := o.fields.RemoteToPayment(&record, customer.Name, againstInvoice, sctx)
	if err != nil {
		return record.ID, err
	}
	if err := o.stores.Payments.Save(ctx, payment); err != nil {
		return record.ID, err
	}
	return record.ID, nil
}

// ---------------------------------------------------------------------------
// Remote deletion
// ---------------------------------------------------------------------------

// MarkDeletedRemotely flags the local mirror of a deleted remote record.
// Nothing is physically deleted.
func (o *Orchestrator) MarkDeletedRemotely(ctx context.Context, entityType syncdomain.EntityType, ninjaID string) error {
	status := syncdomain.DocStatusDeletedRemotely.String()
	switch entityType {
	case syncdomain.EntityTypeCustomer:
		customer, err := o.stores.Customers.FindByNinjaID(ctx, ninjaID)
		if err != nil {
			return err
		}
		customer.SyncStatus = status
		return o.stores.Customers.Save(ctx, customer)
	case syncdomain.EntityTypeSalesInvoice:
		invoice, err := o.stores.Invoices.FindByNinjaID(ctx, ninjaID)
		if err != nil {
			return err
		}
		invoice.SyncStatus = status
		return o.stores.Invoices.Save(ctx, invoice)
	case syncdomain.EntityTypeQuotation:
		quotation, err := o.stores.Quotations.FindByNinjaID(ctx, ninjaID)
		if err != nil {
			return err
		}
		quotation.SyncStatus = status
		return o.stores.Quotations.Save(ctx, quotation)
	case syncdomain.EntityTypeItem:
		item, err := o.stores.Items.FindByNinjaID(ctx, ninjaID)
		if err != nil {
			return err
		}
		item.SyncStatus = status
		return o.stores.Items.Save(ctx, item)
	case syncdomain.EntityTypePaymentEntry:
		payment, err := o.stores.Payments.FindByNinjaID(ctx, ninjaID)
		if err != nil {
			return err
		}
		payment.SyncStatus = status
		return o.stores.Payments.Save(ctx, payment)
	default:
		return syncdomain.ErrUnknownEntityType
	}
}

// ---------------------------------------------------------------------------
// Bulk pull
// ---------------------------------------------------------------------------

// PullResult summarizes a bulk pull of one entity type from one company.
type PullResult struct {
	EntityType     syncdomain.EntityType
	NinjaCompanyID string
	Fetched        int
	Synced         int
	Skipped        int
	Failed         int
}

// PullEntityForCompany pulls all records of one entity type from one remote
// company, page by page, until the remote reports no next page. A record
// failing never stops the pull.
func (o *Orchestrator) PullEntityForCompany(ctx context.Context, entityType syncdomain.EntityType, ninjaCompanyID string) (*PullResult, error) {
	if err := o.directives.Directives().Check(entityType, syncdomain.DirectionInbound); err != nil {
		return nil, err
	}
	collection, err := entityType.Collection()
	if err != nil {
		return nil, err
	}
	client, err := o.clients.ForCompany(ctx, ninjaCompanyID)
	if err != nil {
		return nil, err
	}

	result := &PullResult{EntityType: entityType, NinjaCompanyID: ninjaCompanyID}
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		records, pagination, err := client.ListRaw(ctx, collection, invoiceninja.ListOptions{Page: page, PerPage: 50})
		if err != nil {
			return result, err
		}
		result.Fetched += len(records)

		for _, raw := range records {
			err := o.SyncRecordIn(ctx, entityType, ninjaCompanyID, raw)
			switch {
			case err == nil:
				result.Synced++
			case errors.Is(err, syncdomain.ErrAlreadySynced):
				result.Skipped++
			default:
				result.Failed++
				o.logger.Warn("inbound record sync failed",
					zap.String("entity_type", entityType.String()),
					zap.String("ninja_company_id", ninjaCompanyID),
					zap.Error(err))
			}
		}

		if !pagination.HasMore() {
			break
		}
	}
	return result, nil
}

// PullAll runs the inbound pull for every inbound-enabled entity type across
// every enabled mapping. One company failing never blocks the others.
func (o *Orchestrator) PullAll(ctx context.Context) []PullResult {
	var results []PullResult
	mappings, err := o.companies.EnabledMappings(ctx)
	if err != nil {
		o.logger.Error("pull aborted: cannot load mappings", zap.Error(err))
		return results
	}

	for _, entityType := range o.directives.Directives().EnabledTypes(syncdomain.DirectionInbound) {
		for _, mapping := range mappings {
			result, err := o.PullEntityForCompany(ctx, entityType, mapping.NinjaCompanyID)
			if err != nil {
				o.logger.Warn("company pull failed",
					zap.String("entity_type", entityType.String()),
					zap.String("ninja_company_id", mapping.NinjaCompanyID),
					zap.Error(err))
			}
			if result != nil {
				results = append(results, *result)
			}
		}
	}
	return results
}

// ---------------------------------------------------------------------------
// Fetch preview (read-only)
// ---------------------------------------------------------------------------

// FetchEntitiesForCompany fetches one page of remote records without
// touching the local store.
func (o *Orchestrator) FetchEntitiesForCompany(ctx context.Context, ninjaCompanyID string, entityType syncdomain.EntityType, page, perPage int) (*syncdomain.FetchResult, error) {
	collection, err := entityType.Collection()
	if err != nil {
		return nil, err
	}
	client, err := o.clients.ForCompany(ctx, ninjaCompanyID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	records, pagination, err := client.ListRaw(ctx, collection, invoiceninja.ListOptions{Page: page, PerPage: perPage})
	if err != nil {
		return nil, err
	}
	return &syncdomain.FetchResult{
		EntityType:     entityType,
		NinjaCompanyID: ninjaCompanyID,
		Records:        records,
		Page:           page,
		HasMore:        pagination.HasMore(),
	}, nil
}

// FetchEntitiesForMappedCompanies fetches the first page for every enabled
// mapping. Companies that fail are logged and absent from the result.
func (o *Orchestrator) FetchEntitiesForMappedCompanies(ctx context.Context, entityType syncdomain.EntityType, perPage int) (map[string]*syncdomain.FetchResult, error) {
	mappings, err := o.companies.EnabledMappings(ctx)
	if err != nil {
		return nil, err
	}

	results := make(map[string]*syncdomain.FetchResult)
	for _, mapping := range mappings {
		result, err := o.FetchEntitiesForCompany(ctx, mapping.NinjaCompanyID, entityType, 1, perPage)
		if err != nil {
			o.logger.Warn("fetch preview failed for company",
				zap.String("entity_type", entityType.String()),
				zap.String("ninja_company_id", mapping.NinjaCompanyID),
				zap.Error(err))
			continue
		}
		results[mapping.NinjaCompanyID] = result
	}
	return results, nil
}

// FetchEntityByID fetches one remote record without touching the local store.
func (o *Orchestrator) FetchEntityByID(ctx context.Context, ninjaCompanyID string, entityType syncdomain.EntityType, remoteID string) (json.RawMessage, error) {
	collection, err := entityType.Collection()
	if err != nil {
		return nil, err
	}
	client, err := o.clients.ForCompany(ctx, ninjaCompanyID)
	if err != nil {
		return nil, err
	}
	return client.GetRaw(ctx, collection, remoteID)
}

// ---------------------------------------------------------------------------
// Shared plumbing
// ---------------------------------------------------------------------------

func (o *Orchestrator) stampEntry(entry *syncdomain.LogEntry, sctx *syncdomain.SyncContext) {
	entry.ERPCompany = sctx.ERPCompany
	entry.NinjaCompanyID = sctx.NinjaCompanyID
}

// acquireLock takes the per-document lock when a locker is wired. Sync
// stays available without one; the lock narrows the duplicate-create window.
func (o *Orchestrator) acquireLock(ctx context.Context, entityType syncdomain.EntityType, documentRef string) (syncdomain.DocumentLock, error) {
	if o.locker == nil {
		return nil, nil
	}
	lock, err := o.locker.Acquire(ctx, entityType, documentRef)
	if err != nil {
		if errors.Is(err, syncdomain.ErrDocumentLocked) {
			return nil, err
		}
		o.logger.Warn("sync lock unavailable, proceeding without it", zap.Error(err))
		return nil, nil
	}
	return lock, nil
}

func (o *Orchestrator) releaseLock(ctx context.Context, lock syncdomain.DocumentLock) {
	if lock == nil {
		return
	}
	if err := lock.Release(ctx); err != nil {
		o.logger.Warn("failed to release sync lock", zap.Error(err))
	}
}

// closeEntry records the attempt outcome. A duplicate skip is not a failure.
// Failures additionally raise a notification when a notifier is wired.
func (o *Orchestrator) closeEntry(ctx context.Context, entry *syncdomain.LogEntry, remoteID string, err error) {
	switch {
	case err == nil:
		entry.Complete(remoteID)
	case errors.Is(err, syncdomain.ErrAlreadySynced):
		entry.RemoteID = remoteID
		entry.Skip(err.Error())
	default:
		entry.Fail(err.Error())
	}
	if updateErr := o.logs.Update(ctx, entry); updateErr != nil {
		o.logger.Warn("failed to close sync log entry", zap.Error(updateErr))
	}
	if entry.Status == syncdomain.LogStatusFailed && o.notifier != nil {
		if notifyErr := o.notifier.NotifyFailure(ctx, entry); notifyErr != nil {
			o.logger.Warn("failed to send failure notification", zap.Error(notifyErr))
		}
	}
}
