package sync

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/novizna/ninjasync/internal/domain/erp"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/invoiceninja"
)

// dateLayout is the date format the remote API expects and returns.
const dateLayout = "2006-01-02"

// ---------------------------------------------------------------------------
// FieldMapper
// ---------------------------------------------------------------------------

// FieldMapper translates documents between the ERP shape and the Invoice
// Ninja wire shape. It is a pure translator: it never touches the network
// or the store, and a document it cannot translate is reported, not guessed.
type FieldMapper struct {
	lookups Lookups
}

// NewFieldMapper creates a field mapper with the given translation tables.
func NewFieldMapper(lookups Lookups) *FieldMapper {
	return &FieldMapper{lookups: lookups}
}

// ---------------------------------------------------------------------------
// Customer mapping
// ---------------------------------------------------------------------------

// CustomerToClient maps a customer with its addresses and contacts to a
// client record. The billing address populates the primary address block;
// the shipping address is emitted only when it materially differs.
func (m *FieldMapper) CustomerToClient(customer *erp.Customer, addresses []erp.Address, contacts []erp.Contact) (*invoiceninja.ClientRecord, error) {
	if customer == nil || customer.CustomerName == "" {
		return nil, syncdomain.ErrMappingFailed
	}

	record := &invoiceninja.ClientRecord{
		ID:             customer.NinjaID,
		Name:           customer.CustomerName,
		VatNumber:      customer.TaxID,
		Website:        customer.Website,
		Phone:          customer.Phone,
		Classification: classificationFor(customer.CustomerType),
	}
	if customer.Currency != "" {
		record.Settings = &invoiceninja.ClientSettings{
			CurrencyID: m.lookups.CurrencyID(customer.Currency),
		}
	}

	billing := pickAddress(addresses, erp.AddressTypeBilling)
	if billing != nil {
		record.Address1 = billing.AddressLine1
		record.Address2 = billing.AddressLine2
		record.City = billing.City
		record.State = billing.State
		record.PostalCode = billing.PostalCode
		record.CountryID = m.lookups.CountryID(billing.Country)
	}
	shipping := pickAddress(addresses, erp.AddressTypeShipping)
	if shipping != nil && (billing == nil || !sameAddress(billing, shipping)) {
		record.ShippingAddress1 = shipping.AddressLine1
		record.ShippingAddress2 = shipping.AddressLine2
		record.ShippingCity = shipping.City
		record.ShippingState = shipping.State
		record.ShippingPostalCode = shipping.PostalCode
		record.ShippingCountryID = m.lookups.CountryID(shipping.Country)
	}

	for _, contact := range contacts {
		record.Contacts = append(record.Contacts, invoiceninja.ContactRecord{
			ID:        contact.NinjaContactID,
			FirstName: contact.FirstName,
			LastName:  contact.LastName,
			Email:     contact.Email,
			Phone:     contact.Phone,
			IsPrimary: contact.IsPrimary,
		})
	}

	return record, nil
}

// ClientToCustomer maps a remote client onto a customer, updating the
// existing record when one is passed. The typing heuristic only runs when
// the remote carries no classification.
func (m *FieldMapper) ClientToCustomer(record *invoiceninja.ClientRecord, existing *erp.Customer, sctx *syncdomain.SyncContext) (*erp.Customer, error) {
	if record == nil || record.Name == "" {
		return nil, syncdomain.ErrMappingFailed
	}
	if sctx == nil {
		return nil, syncdomain.ErrNoCompanyMapping
	}

	customer := existing
	if customer == nil {
		customer = &erp.Customer{
			ID:        uuid.New(),
			Name:      record.Name,
			CreatedAt: time.Now(),
		}
	}

	customer.CustomerName = record.Name
	customer.CustomerType = m.ClassifyCustomer(record.Name, record.Classification)
	customer.Company = sctx.ERPCompany
	customer.TaxID = record.VatNumber
	customer.Website = record.Website
	customer.Phone = record.Phone
	if record.Settings != nil {
		customer.Currency = m.lookups.Currency(record.Settings.CurrencyID)
	} else if customer.Currency == "" {
		customer.Currency = FallbackCurrency
	}
	if primary := primaryContact(record.Contacts); primary != nil {
		customer.Email = primary.Email
		if customer.Phone == "" {
			customer.Phone = primary.Phone
		}
	}
	customer.NinjaID = record.ID
	customer.NinjaCompanyID = sctx.NinjaCompanyID
	customer.SyncStatus = syncdomain.DocStatusSynced.String()
	customer.UpdatedAt = time.Now()

	return customer, nil
}

// ClassifyCustomer derives the customer type. A remote classification wins;
// otherwise a name of at most two tokens reads as a person.
func (m *FieldMapper) ClassifyCustomer(name, classification string) erp.CustomerType {
	switch strings.ToLower(classification) {
	case "individual":
		return erp.CustomerTypeIndividual
	case "company", "business":
		return erp.CustomerTypeCompany
	}
	if len(strings.Fields(name)) <= 2 {
		return erp.CustomerTypeIndividual
	}
	return erp.CustomerTypeCompany
}

// ClientAddresses builds the local addresses carried by a remote client.
// A customer carries at most one billing and one shipping address; an
// existing address of the same type is updated in place, same as contacts,
// so repeated inbound syncs never accumulate rows.
func (m *FieldMapper) ClientAddresses(record *invoiceninja.ClientRecord, customerID uuid.UUID, existing []erp.Address) []erp.Address {
	var out []erp.Address
	now := time.Now()
	if record.Address1 != "" || record.City != "" {
		addr := matchAddress(existing, erp.AddressTypeBilling)
		if addr == nil {
			addr = &erp.Address{
				ID:          uuid.New(),
				CustomerID:  customerID,
				AddressType: erp.AddressTypeBilling,
				CreatedAt:   now,
			}
		}
		addr.AddressLine1 = record.Address1
		addr.AddressLine2 = record.Address2
		addr.City = record.City
		addr.State = record.State
		addr.PostalCode = record.PostalCode
		addr.Country = m.lookups.CountryName(record.CountryID)
		addr.UpdatedAt = now
		out = append(out, *addr)
	}
	if record.ShippingAddress1 != "" || record.ShippingCity != "" {
		addr := matchAddress(existing, erp.AddressTypeShipping)
		if addr == nil {
			addr = &erp.Address{
				ID:          uuid.New(),
				CustomerID:  customerID,
				AddressType: erp.AddressTypeShipping,
				CreatedAt:   now,
			}
		}
		addr.AddressLine1 = record.ShippingAddress1
		addr.AddressLine2 = record.ShippingAddress2
		addr.City = record.ShippingCity
		addr.State = record.ShippingState
		addr.PostalCode = record.ShippingPostalCode
		addr.Country = m.lookups.CountryName(record.ShippingCountryID)
		addr.UpdatedAt = now
		out = append(out, *addr)
	}
	return out
}

// matchAddress finds the existing address of the given type.
func matchAddress(existing []erp.Address, addressType erp.AddressType) *erp.Address {
	for i := range existing {
		if existing[i].AddressType == addressType {
			return &existing[i]
		}
	}
	return nil
}

// MatchContact finds the local contact a remote contact corresponds to.
// Matching tries the remote contact ID first, then email, then phone.
func (m *FieldMapper) MatchContact(record invoiceninja.ContactRecord, existing []erp.Contact) *erp.Contact {
	if record.ID != "" {
		for i := range existing {
			if existing[i].NinjaContactID == record.ID {
				return &existing[i]
			}
		}
	}
	if record.Email != "" {
		for i := range existing {
			if existing[i].Email != "" && strings.EqualFold(existing[i].Email, record.Email) {
				return &existing[i]
			}
		}
	}
	if record.Phone != "" {
		for i := range existing {
			if existing[i].Phone == record.Phone {
				return &existing[i]
			}
		}
	}
	return nil
}

// ClientContacts reconciles remote contacts with the customer's existing
// contacts, updating matches in place and creating the rest.
func (m *FieldMapper) ClientContacts(record *invoiceninja.ClientRecord, customerID uuid.UUID, existing []erp.Contact) []erp.Contact {
	var out []erp.Contact
	now := time.Now()
	for _, rc := range record.Contacts {
		if match := m.MatchContact(rc, existing); match != nil {
			match.FirstName = rc.FirstName
			match.LastName = rc.LastName
			match.Email = rc.Email
			match.Phone = rc.Phone
			match.IsPrimary = rc.IsPrimary
			match.NinjaContactID = rc.ID
			match.UpdatedAt = now
			out = append(out, *match)
			continue
		}
		out = append(out, erp.Contact{
			ID:             uuid.New(),
			CustomerID:     customerID,
			FirstName:      rc.FirstName,
			LastName:       rc.LastName,
			Email:          rc.Email,
			Phone:          rc.Phone,
			IsPrimary:      rc.IsPrimary,
			NinjaContactID: rc.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Invoice and quotation mapping
// ---------------------------------------------------------------------------

// InvoiceToRemote maps a sales invoice to a remote invoice. The customer
// must already be linked; an unresolved client link aborts the mapping.
func (m *FieldMapper) InvoiceToRemote(invoice *erp.SalesInvoice, clientNinjaID string) (*invoiceninja.InvoiceRecord, error) {
	if invoice == nil || len(invoice.Items) == 0 {
		return nil, syncdomain.ErrMappingFailed
	}
	if clientNinjaID == "" {
		return nil, syncdomain.ErrMissingClientLink
	}

	record := &invoiceninja.InvoiceRecord{
		ID:          invoice.NinjaID,
		ClientID:    clientNinjaID,
		PoNumber:    invoice.Name,
		Date:        invoice.PostingDate.Format(dateLayout),
		PublicNotes: invoice.Remarks,
		LineItems:   mapLines(invoice.Items),
	}
	if invoice.DueDate != nil {
		record.DueDate = invoice.DueDate.Format(dateLayout)
	}
	return record, nil
}

// RemoteToInvoice maps a remote invoice onto a sales invoice document. Line
// item codes come from the remote product keys; the orchestrator resolves
// them to real items before saving.
func (m *FieldMapper) RemoteToInvoice(record *invoiceninja.InvoiceRecord, customerName string, sctx *syncdomain.SyncContext) (*erp.SalesInvoice, error) {
	if record == nil || record.ID == "" {
		return nil, syncdomain.ErrMappingFailed
	}
	if customerName == "" {
		return nil, syncdomain.ErrMissingClientLink
	}
	if sctx == nil {
		return nil, syncdomain.ErrNoCompanyMapping
	}

	now := time.Now()
	invoice := &erp.SalesInvoice{
		ID:             uuid.New(),
		Name:           record.Number,
		Customer:       customerName,
		Company:        sctx.ERPCompany,
		Currency:       FallbackCurrency,
		PostingDate:    parseDate(record.Date, now),
		Items:          unmapLines(record.LineItems),
		TotalTaxes:     record.TotalTaxes,
		GrandTotal:     record.Amount,
		Status:         m.lookups.InvoiceStatus(record.StatusID),
		Remarks:        record.PublicNotes,
		NinjaID:        record.ID,
		NinjaCompanyID: sctx.NinjaCompanyID,
		SyncStatus:     syncdomain.DocStatusSynced.String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if record.DueDate != "" {
		due := parseDate(record.DueDate, now)
		invoice.DueDate = &due
	}
	if len(invoice.Items) == 0 {
		return nil, syncdomain.ErrMappingFailed
	}
	return invoice, nil
}

// QuotationToRemote maps a quotation to a remote quote.
func (m *FieldMapper) QuotationToRemote(quotation *erp.Quotation, clientNinjaID string) (*invoiceninja.InvoiceRecord, error) {
	if quotation == nil || len(quotation.Items) == 0 {
		return nil, syncdomain.ErrMappingFailed
	}
	if clientNinjaID == "" {
		return nil, syncdomain.ErrMissingClientLink
	}

	record := &invoiceninja.InvoiceRecord{
		ID:          quotation.NinjaID,
		ClientID:    clientNinjaID,
		PoNumber:    quotation.Name,
		Date:        quotation.TransactionDate.Format(dateLayout),
		PublicNotes: quotation.Remarks,
		LineItems:   mapLines(quotation.Items),
	}
	if quotation.ValidTill != nil {
		record.DueDate = quotation.ValidTill.Format(dateLayout)
	}
	return record, nil
}

// RemoteToQuotation maps a remote quote onto a quotation document.
func (m *FieldMapper) RemoteToQuotation(record *invoiceninja.InvoiceRecord, customerName string, sctx *syncdomain.SyncContext) (*erp.Quotation, error) {
	if record == nil || record.ID == "" {
		return nil, syncdomain.ErrMappingFailed
	}
	if customerName == "" {
		return nil, syncdomain.ErrMissingClientLink
	}
	if sctx == nil {
		return nil, syncdomain.ErrNoCompanyMapping
	}

	now := time.Now()
	quotation := &erp.Quotation{
		ID:              uuid.New(),
		Name:            record.Number,
		Customer:        customerName,
		Company:         sctx.ERPCompany,
		Currency:        FallbackCurrency,
		TransactionDate: parseDate(record.Date, now),
		Items:           unmapLines(record.LineItems),
		TotalTaxes:      record.TotalTaxes,
		GrandTotal:      record.Amount,
		Status:          m.lookups.QuoteStatus(record.StatusID),
		Remarks:         record.PublicNotes,
		NinjaID:         record.ID,
		NinjaCompanyID:  sctx.NinjaCompanyID,
		SyncStatus:      syncdomain.DocStatusSynced.String(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if record.DueDate != "" {
		valid := parseDate(record.DueDate, now)
		quotation.ValidTill = &valid
	}
	if len(quotation.Items) == 0 {
		return nil, syncdomain.ErrMappingFailed
	}
	return quotation, nil
}

// ---------------------------------------------------------------------------
// Item mapping
// ---------------------------------------------------------------------------

// ItemToProduct maps an item to a remote product.
func (m *FieldMapper) ItemToProduct(item *erp.Item) (*invoiceninja.ProductRecord, error) {
	if item == nil || item.ItemCode == "" {
		return nil, syncdomain.ErrMappingFailed
	}

	notes := item.Description
	if notes == "" {
		notes = item.ItemName
	}
	return &invoiceninja.ProductRecord{
		ID:         item.NinjaID,
		ProductKey: item.ItemCode,
		Notes:      notes,
		Price:      item.StandardRate,
	}, nil
}

// ProductToItem maps a remote product onto an item. The item code must be
// resolved by the caller; unknown product keys get a synthesized code.
func (m *FieldMapper) ProductToItem(record *invoiceninja.ProductRecord, itemCode string, existing *erp.Item, sctx *syncdomain.SyncContext) (*erp.Item, error) {
	if record == nil || record.ID == "" || itemCode == "" {
		return nil, syncdomain.ErrMappingFailed
	}
	if sctx == nil {
		return nil, syncdomain.ErrNoCompanyMapping
	}

	item := existing
	if item == nil {
		item = &erp.Item{
			ID:        uuid.New(),
			ItemCode:  itemCode,
			StockUOM:  "Nos",
			CreatedAt: time.Now(),
		}
	}
	item.ItemName = firstNonEmpty(record.ProductKey, itemCode)
	item.Description = record.Notes
	item.StandardRate = record.Price
	item.NinjaID = record.ID
	item.NinjaCompanyID = sctx.NinjaCompanyID
	item.SyncStatus = syncdomain.DocStatusSynced.String()
	item.UpdatedAt = time.Now()
	return item, nil
}

// ---------------------------------------------------------------------------
// Payment mapping
// ---------------------------------------------------------------------------

// PaymentToRemote maps a payment entry to a remote payment. The settled
// invoice link is attached when the invoice is itself synced.
func (m *FieldMapper) PaymentToRemote(payment *erp.PaymentEntry, clientNinjaID, invoiceNinjaID string) (*invoiceninja.PaymentRecord, error) {
	if payment == nil || payment.PaidAmount.IsZero() {
		return nil, syncdomain.ErrMappingFailed
	}
	if clientNinjaID == "" {
		return nil, syncdomain.ErrMissingClientLink
	}

	record := &invoiceninja.PaymentRecord{
		ID:                   payment.NinjaID,
		ClientID:             clientNinjaID,
		Amount:               payment.PaidAmount,
		Date:                 payment.PostingDate.Format(dateLayout),
		TransactionReference: firstNonEmpty(payment.ReferenceNo, payment.Name),
	}
	if invoiceNinjaID != "" {
		record.Invoices = []invoiceninja.PaymentInvoice{
			{InvoiceID: invoiceNinjaID, Amount: payment.PaidAmount},
		}
	}
	return record, nil
}

// RemoteToPayment maps a remote payment onto a payment entry document.
func (m *FieldMapper) RemoteToPayment(record *invoiceninja.PaymentRecord, customerName, againstInvoice string, sctx *syncdomain.SyncContext) (*erp.PaymentEntry, error) {
	if record == nil || record.ID == "" || record.Amount.IsZero() {
		return nil, syncdomain.ErrMappingFailed
	}
	if customerName == "" {
		return nil, syncdomain.ErrMissingClientLink
	}
	if sctx == nil {
		return nil, syncdomain.ErrNoCompanyMapping
	}

	now := time.Now()
	return &erp.PaymentEntry{
		ID:             uuid.New(),
		Name:           firstNonEmpty(record.TransactionReference, record.ID),
		Party:          customerName,
		Company:        sctx.ERPCompany,
		PostingDate:    parseDate(record.Date, now),
		PaidAmount:     record.Amount,
		Currency:       FallbackCurrency,
		ReferenceNo:    record.TransactionReference,
		AgainstInvoice: againstInvoice,
		NinjaID:        record.ID,
		NinjaCompanyID: sctx.NinjaCompanyID,
		SyncStatus:     syncdomain.DocStatusSynced.String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func classificationFor(t erp.CustomerType) string {
	if t == erp.CustomerTypeIndividual {
		return "individual"
	}
	return "company"
}

func pickAddress(addresses []erp.Address, addressType erp.AddressType) *erp.Address {
	for i := range addresses {
		if addresses[i].AddressType == addressType {
			return &addresses[i]
		}
	}
	return nil
}

func sameAddress(a, b *erp.Address) bool {
	return a.AddressLine1 == b.AddressLine1 &&
		a.City == b.City &&
		a.PostalCode == b.PostalCode &&
		a.Country == b.Country
}

func primaryContact(contacts []invoiceninja.ContactRecord) *invoiceninja.ContactRecord {
	for i := range contacts {
		if contacts[i].IsPrimary {
			return &contacts[i]
		}
	}
	if len(contacts) > 0 {
		return &contacts[0]
	}
	return nil
}

func mapLines(lines []erp.InvoiceLine) []invoiceninja.LineItem {
	out := make([]invoiceninja.LineItem, 0, len(lines))
	for _, line := range lines {
		notes := line.Description
		if notes == "" {
			notes = line.ItemName
		}
		out = append(out, invoiceninja.LineItem{
			ProductKey: line.ItemCode,
			Notes:      notes,
			Quantity:   line.Qty,
			Cost:       line.Rate,
		})
	}
	return out
}

func unmapLines(lines []invoiceninja.LineItem) []erp.InvoiceLine {
	out := make([]erp.InvoiceLine, 0, len(lines))
	for _, line := range lines {
		qty := line.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		out = append(out, erp.InvoiceLine{
			ID:          uuid.New(),
			ItemCode:    line.ProductKey,
			ItemName:    firstNonEmpty(line.ProductKey, line.Notes),
			Description: line.Notes,
			Qty:         qty,
			Rate:        line.Cost,
			Amount:      line.Cost.Mul(qty),
		})
	}
	return out
}

func parseDate(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return fallback
	}
	return parsed
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
