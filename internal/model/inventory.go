package model

import "github.com/google/uuid"

// StockPreset is a named board profile that can be bought, e.g. "Crown 8'".
type StockPreset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Length   float64 `json:"length"` // inches
	Material string  `json:"material"`
	Price    float64 `json:"price"` // per board, 0 if unknown
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, length float64, material string, price float64) StockPreset {
	return StockPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Material: material,
		Price:    price,
	}
}

// ToStockSettings converts the preset into maker settings with the given kerf.
func (sp StockPreset) ToStockSettings(kerf float64, join bool) StockSettings {
	return StockSettings{BoardLength: sp.Length, Kerf: kerf, Join: join}
}

// Catalog holds the user's saved stock presets.
type Catalog struct {
	Stocks []StockPreset `json:"stocks"`
}

// DefaultCatalog returns a catalog populated with common trim stock.
func DefaultCatalog() Catalog {
	return Catalog{
		Stocks: []StockPreset{
			NewStockPreset("Casing 16'", 16*12, "Primed MDF", 0),
			NewStockPreset("Casing 8'", 8*12, "Primed MDF", 0),
			NewStockPreset("Stool 10'", 10*12, "Poplar", 0),
			NewStockPreset("Crown 8'", 8*12, "Primed Pine", 0),
			NewStockPreset("Bead 8'", 8*12, "Primed Pine", 0),
			NewStockPreset("Apron 12'", 12*12, "Primed MDF", 0),
		},
	}
}

// FindStockByID returns a pointer to the preset with the given ID, or nil.
func (c *Catalog) FindStockByID(id string) *StockPreset {
	for i := range c.Stocks {
		if c.Stocks[i].ID == id {
			return &c.Stocks[i]
		}
	}
	return nil
}

// FindStockByName returns a pointer to the first preset with the given name, or nil.
func (c *Catalog) FindStockByName(name string) *StockPreset {
	for i := range c.Stocks {
		if c.Stocks[i].Name == name {
			return &c.Stocks[i]
		}
	}
	return nil
}

// StockNames returns the preset names in catalog order.
func (c *Catalog) StockNames() []string {
	names := make([]string, len(c.Stocks))
	for i, s := range c.Stocks {
		names[i] = s.Name
	}
	return names
}

// Merge adds presets from other whose IDs are not already present.
// It returns the number of presets added.
func (c *Catalog) Merge(other Catalog) int {
	ids := make(map[string]bool, len(c.Stocks))
	for _, s := range c.Stocks {
		ids[s.ID] = true
	}
	added := 0
	for _, s := range other.Stocks {
		if ids[s.ID] {
			continue
		}
		c.Stocks = append(c.Stocks, s)
		ids[s.ID] = true
		added++
	}
	return added
}
