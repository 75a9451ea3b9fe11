package sync

// ---------------------------------------------------------------------------
// Lookup tables
// ---------------------------------------------------------------------------

// Lookups holds the code translation tables between ERP values and Invoice
// Ninja numeric identifiers. Tables are injected into the field mapper so
// deployments (and tests) can substitute their own.
type Lookups struct {
	// CurrencyByID maps remote currency IDs to ISO currency codes
	CurrencyByID map[string]string
	// CountryNameByID maps remote country IDs to country names
	CountryNameByID map[string]string
	// CountryIDByName is the reverse country table
	CountryIDByName map[string]string
	// InvoiceStatusByID maps remote invoice status IDs to ERP status names
	InvoiceStatusByID map[string]string
	// QuoteStatusByID maps remote quote status IDs to ERP status names
	QuoteStatusByID map[string]string
}

// Fallbacks used when a code is absent from the tables.
const (
	FallbackCurrency = "USD"
	FallbackCountry  = "United States"
	FallbackStatus   = "Draft"
)

// DefaultLookups returns the stock translation tables.
func DefaultLookups() Lookups {
	return Lookups{
		CurrencyByID: map[string]string{
			"1":  "USD",
			"2":  "EUR",
			"3":  "GBP",
			"4":  "AUD",
			"5":  "CAD",
			"6":  "JPY",
			"7":  "CHF",
			"8":  "SEK",
			"9":  "NOK",
			"10": "DKK",
		},
		CountryNameByID: map[string]string{
			"840": "United States",
			"826": "United Kingdom",
			"124": "Canada",
			"36":  "Australia",
			"276": "Germany",
			"250": "France",
		},
		CountryIDByName: map[string]string{
			"United States":  "840",
			"United Kingdom": "826",
			"Canada":         "124",
			"Australia":      "36",
			"Germany":        "276",
			"France":         "250",
		},
		InvoiceStatusByID: map[string]string{
			"1": "Draft",
			"2": "Submitted",
			"3": "Paid",
			"4": "Cancelled",
			"5": "Overdue",
		},
		QuoteStatusByID: map[string]string{
			"1": "Draft",
			"2": "Open",
			"3": "Ordered",
			"4": "Expired",
			"5": "Cancelled",
		},
	}
}

// Currency translates a remote currency ID, defaulting to USD.
func (l Lookups) Currency(id string) string {
	if code, ok := l.CurrencyByID[id]; ok {
		return code
	}
	return FallbackCurrency
}

// CurrencyID translates an ISO currency code back to a remote ID. Unknown
// codes map to the USD ID.
func (l Lookups) CurrencyID(code string) string {
	for id, c := range l.CurrencyByID {
		if c == code {
			return id
		}
	}
	return "1"
}

// CountryName translates a remote country ID, defaulting to United States.
func (l Lookups) CountryName(id string) string {
	if name, ok := l.CountryNameByID[id]; ok {
		return name
	}
	return FallbackCountry
}

// CountryID translates a country name back to a remote ID, defaulting to the
// United States ID.
func (l Lookups) CountryID(name string) string {
	if id, ok := l.CountryIDByName[name]; ok {
		return id
	}
	return "840"
}

// InvoiceStatus translates a remote invoice status ID, defaulting to Draft.
func (l Lookups) InvoiceStatus(id string) string {
	if status, ok := l.InvoiceStatusByID[id]; ok {
		return status
	}
	return FallbackStatus
}

// QuoteStatus translates a remote quote status ID, defaulting to Draft.
func (l Lookups) QuoteStatus(id string) string {
	if status, ok := l.QuoteStatusByID[id]; ok {
		return status
	}
	return FallbackStatus
}
