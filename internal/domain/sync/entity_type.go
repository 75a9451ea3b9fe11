package sync

// ---------------------------------------------------------------------------
// EntityType represents a synchronizable document type
// ---------------------------------------------------------------------------

// EntityType represents a synchronizable document type.
type EntityType string

const (
	// EntityTypeCustomer maps the ERP Customer to an Invoice Ninja client
	EntityTypeCustomer EntityType = "Customer"
	// EntityTypeSalesInvoice maps the ERP Sales Invoice to an Invoice Ninja invoice
	EntityTypeSalesInvoice EntityType = "Sales Invoice"
	// EntityTypeQuotation maps the ERP Quotation to an Invoice Ninja quote
	EntityTypeQuotation EntityType = "Quotation"
	// EntityTypeItem maps the ERP Item to an Invoice Ninja product
	EntityTypeItem EntityType = "Item"
	// EntityTypePaymentEntry maps the ERP Payment Entry to an Invoice Ninja payment
	EntityTypePaymentEntry EntityType = "Payment Entry"
)

// IsValid returns true if the entity type is valid
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeCustomer, EntityTypeSalesInvoice, EntityTypeQuotation,
		EntityTypeItem, EntityTypePaymentEntry:
		return true
	default:
		return false
	}
}

// String returns the string representation of EntityType
func (t EntityType) String() string {
	return string(t)
}

// AllEntityTypes returns every synchronizable entity type in dispatch order.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeCustomer,
		EntityTypeSalesInvoice,
		EntityTypeQuotation,
		EntityTypeItem,
		EntityTypePaymentEntry,
	}
}

// ---------------------------------------------------------------------------
// Remote collection dispatch
// ---------------------------------------------------------------------------

// RemoteCollection describes the Invoice Ninja API surface for an entity type.
type RemoteCollection struct {
	// Path is the collection segment under /api/v1/
	Path string
	// Include lists the related resources requested on fetch
	Include string
}

var remoteCollections = map[EntityType]RemoteCollection{
	EntityTypeCustomer:     {Path: "clients", Include: "contacts,group_settings"},
	EntityTypeSalesInvoice: {Path: "invoices", Include: "client,line_items"},
	EntityTypeQuotation:    {Path: "quotes", Include: "client,line_items"},
	EntityTypeItem:         {Path: "products", Include: ""},
	EntityTypePaymentEntry: {Path: "payments", Include: "invoice,client"},
}

// Collection returns the remote collection for the entity type.
func (t EntityType) Collection() (RemoteCollection, error) {
	c, ok := remoteCollections[t]
	if !ok {
		return RemoteCollection{}, ErrUnknownEntityType
	}
	return c, nil
}

// EntityTypeFromWebhook resolves the entity type named in a webhook payload.
// Webhook payloads use the remote's lowercase singular names.
func EntityTypeFromWebhook(name string) (EntityType, bool) {
	switch name {
	case "client":
		return EntityTypeCustomer, true
	case "invoice":
		return EntityTypeSalesInvoice, true
	case "quote":
		return EntityTypeQuotation, true
	case "product":
		return EntityTypeItem, true
	case "payment":
		return EntityTypePaymentEntry, true
	default:
		return "", false
	}
}

// ---------------------------------------------------------------------------
// Direction represents the allowed flow of a sync
// ---------------------------------------------------------------------------

// Direction represents the allowed flow of a sync.
type Direction string

const (
	// DirectionOutbound pushes local documents to Invoice Ninja
	DirectionOutbound Direction = "OUTBOUND"
	// DirectionInbound pulls remote records into the local store
	DirectionInbound Direction = "INBOUND"
)

// IsValid returns true if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionOutbound || d == DirectionInbound
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// ---------------------------------------------------------------------------
// Directive gates
// ---------------------------------------------------------------------------

// Directive is the per-entity-type sync policy. A sync attempt must pass
// both gates: the type must be enabled and the requested direction allowed.
type Directive struct {
	EntityType EntityType
	Enabled    bool
	Outbound   bool
	Inbound    bool
}

// Allows reports whether a sync in the given direction may proceed.
func (d Directive) Allows(direction Direction) bool {
	if !d.Enabled {
		return false
	}
	switch direction {
	case DirectionOutbound:
		return d.Outbound
	case DirectionInbound:
		return d.Inbound
	default:
		return false
	}
}

// DirectiveSet holds the directives for every entity type.
type DirectiveSet map[EntityType]Directive

// Check validates the two gates for a sync attempt. It returns
// ErrEntityTypeDisabled or ErrDirectionDisabled on the first failed gate.
func (s DirectiveSet) Check(entityType EntityType, direction Direction) error {
	d, ok := s[entityType]
	if !ok || !d.Enabled {
		return ErrEntityTypeDisabled
	}
	if !d.Allows(direction) {
		return ErrDirectionDisabled
	}
	return nil
}

// EnabledTypes returns the entity types with the given direction enabled,
// in dispatch order.
func (s DirectiveSet) EnabledTypes(direction Direction) []EntityType {
	var out []EntityType
	for _, t := range AllEntityTypes() {
		if d, ok := s[t]; ok && d.Allows(direction) {
			out = append(out, t)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Document sync status
// ---------------------------------------------------------------------------

// DocStatus is the per-document synchronization state stamped on local records.
type DocStatus string

const (
	// DocStatusNotSynced indicates the document has never been pushed or pulled
	DocStatusNotSynced DocStatus = "Not Synced"
	// DocStatusSynced indicates the document is linked to a remote record
	DocStatusSynced DocStatus = "Synced"
	// DocStatusFailed indicates the last sync attempt failed
	DocStatusFailed DocStatus = "Failed"
	// DocStatusDeletedRemotely indicates the remote record was deleted; the
	// local document is kept and only flagged
	DocStatusDeletedRemotely DocStatus = "Deleted in Invoice Ninja"
)

// String returns the string representation of DocStatus
func (s DocStatus) String() string {
	return string(s)
}
