package domain

import "fmt"

// Sequence domains. One monotonic counter per id namespace; counters are
// incremented exactly once per successful creation and never reused, even
// across archival.
const (
	SeqSale          = "sale"
	SeqPurchase      = "purchase"
	SeqJournal       = "journal"
	SeqTreasury      = "treasury"
	SeqAdjustment    = "inventoryAdjustment"
	SeqPriceQuote    = "priceQuote"
	SeqPurchaseQuote = "purchaseQuote"
	SeqCustomer      = "customer"
	SeqSupplier      = "supplier"
	SeqItem          = "item"
	SeqAccount       = "account"
	SeqBarcode       = "barcode"
)

var idPrefixes = map[string]string{
	SeqSale:          "INV",
	SeqPurchase:      "PUR",
	SeqJournal:       "JV",
	SeqTreasury:      "TRV",
	SeqAdjustment:    "ADJ",
	SeqPriceQuote:    "QUO",
	SeqPurchaseQuote: "PQU",
	SeqCustomer:      "CUS",
	SeqSupplier:      "SUP",
	SeqItem:          "ITM",
	SeqAccount:       "ACC",
}

// Sequences maps domain name to the next counter value.
type Sequences map[string]int64

// NewSequences starts every known domain at 1.
func NewSequences() Sequences {
	s := make(Sequences, len(idPrefixes)+1)
	for domain := range idPrefixes {
		s[domain] = 1
	}
	s[SeqBarcode] = 1
	return s
}

// Next returns the current counter value for the domain and increments it as
// a single step. Unknown domains start at 1.
func (s Sequences) Next(domain string) int64 {
	n, ok := s[domain]
	if !ok {
		n = 1
	}
	s[domain] = n + 1
	return n
}

// NextID mints the next human-readable id for the domain, e.g. INV-000042.
// The barcode domain produces a bare 12-digit numeric string.
func (s Sequences) NextID(domain string) string {
	n := s.Next(domain)
	if domain == SeqBarcode {
		return fmt.Sprintf("%012d", n)
	}
	prefix, ok := idPrefixes[domain]
	if !ok {
		prefix = "DOC"
	}
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// Clone copies the counter map.
func (s Sequences) Clone() Sequences {
	out := make(Sequences, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
