package domain

// State is the entire in-memory dataset: account tree, ledgers, documents,
// inventory, parties, sequences and settings. The engine treats it as one
// versioned value, replaced wholesale on every successful operation; a failed
// precondition leaves the previous value untouched. The snapshot handed to
// persistence is exactly this struct, serialized.
type State struct {
	Version     int64                 `json:"version"`
	Accounts    ChartOfAccounts       `json:"accounts"`
	Journal     []JournalEntry        `json:"journal"`
	Sales       []Sale                `json:"sales"`
	Purchases   []Purchase            `json:"purchases"`
	Treasury    []TreasuryTransaction `json:"treasury"`
	Adjustments []InventoryAdjustment `json:"adjustments"`
	PriceQuotes []PriceQuote          `json:"priceQuotes"`
	PurchQuotes []PurchaseQuote       `json:"purchaseQuotes"`
	Items       []InventoryItem       `json:"items"`
	Customers   []Customer            `json:"customers"`
	Suppliers   []Supplier            `json:"suppliers"`
	Sequences   Sequences             `json:"sequences"`
	Settings    Settings              `json:"settings"`
}

// Clone deep-copies the state. Operations mutate a clone and the engine swaps
// it in only on success.
func (s *State) Clone() *State {
	out := &State{
		Version:     s.Version,
		Accounts:    s.Accounts.Clone(),
		Journal:     make([]JournalEntry, len(s.Journal)),
		Sales:       make([]Sale, len(s.Sales)),
		Purchases:   make([]Purchase, len(s.Purchases)),
		Treasury:    append([]TreasuryTransaction(nil), s.Treasury...),
		Adjustments: make([]InventoryAdjustment, len(s.Adjustments)),
		PriceQuotes: make([]PriceQuote, len(s.PriceQuotes)),
		PurchQuotes: make([]PurchaseQuote, len(s.PurchQuotes)),
		Items:       make([]InventoryItem, len(s.Items)),
		Customers:   append([]Customer(nil), s.Customers...),
		Suppliers:   append([]Supplier(nil), s.Suppliers...),
		Sequences:   s.Sequences.Clone(),
		Settings:    s.Settings,
	}
	for i, e := range s.Journal {
		out.Journal[i] = e.Clone()
	}
	for i, d := range s.Sales {
		d.Lines = append([]LineItem(nil), d.Lines...)
		out.Sales[i] = d
	}
	for i, d := range s.Purchases {
		d.Lines = append([]LineItem(nil), d.Lines...)
		out.Purchases[i] = d
	}
	for i, d := range s.Adjustments {
		d.Lines = append([]AdjustmentLine(nil), d.Lines...)
		out.Adjustments[i] = d
	}
	for i, q := range s.PriceQuotes {
		q.Lines = append([]LineItem(nil), q.Lines...)
		out.PriceQuotes[i] = q
	}
	for i, q := range s.PurchQuotes {
		q.Lines = append([]LineItem(nil), q.Lines...)
		out.PurchQuotes[i] = q
	}
	for i, it := range s.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

// Lookup helpers. They return pointers into the state's own slices so the
// engine can mutate a clone in place; query paths must copy before returning.

func (s *State) JournalByID(id string) *JournalEntry {
	for i := range s.Journal {
		if s.Journal[i].ID == id {
			return &s.Journal[i]
		}
	}
	return nil
}

func (s *State) SaleByID(id string) *Sale {
	for i := range s.Sales {
		if s.Sales[i].ID == id {
			return &s.Sales[i]
		}
	}
	return nil
}

func (s *State) PurchaseByID(id string) *Purchase {
	for i := range s.Purchases {
		if s.Purchases[i].ID == id {
			return &s.Purchases[i]
		}
	}
	return nil
}

func (s *State) TreasuryByID(id string) *TreasuryTransaction {
	for i := range s.Treasury {
		if s.Treasury[i].ID == id {
			return &s.Treasury[i]
		}
	}
	return nil
}

func (s *State) AdjustmentByID(id string) *InventoryAdjustment {
	for i := range s.Adjustments {
		if s.Adjustments[i].ID == id {
			return &s.Adjustments[i]
		}
	}
	return nil
}

func (s *State) PriceQuoteByID(id string) *PriceQuote {
	for i := range s.PriceQuotes {
		if s.PriceQuotes[i].ID == id {
			return &s.PriceQuotes[i]
		}
	}
	return nil
}

func (s *State) PurchaseQuoteByID(id string) *PurchaseQuote {
	for i := range s.PurchQuotes {
		if s.PurchQuotes[i].ID == id {
			return &s.PurchQuotes[i]
		}
	}
	return nil
}

func (s *State) ItemByID(id string) *InventoryItem {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

func (s *State) CustomerByID(id string) *Customer {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return &s.Customers[i]
		}
	}
	return nil
}

func (s *State) SupplierByID(id string) *Supplier {
	for i := range s.Suppliers {
		if s.Suppliers[i].ID == id {
			return &s.Suppliers[i]
		}
	}
	return nil
}
