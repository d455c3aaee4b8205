package values

type Config interface {
}

// ShopifyValues holds the marketplace defaults applied when a product or
// variant carries no explicit value of its own.
type ShopifyValues struct {
	WeightBaseKg     float64 `yaml:"weight-base-kg"`
	WeightAreaFactor float64 `yaml:"weight-area-factor"`
	InventoryPolicy  string  `yaml:"inventory-policy"`
	DefaultStatus    string  `yaml:"default-status"`
	DefaultColor     string  `yaml:"default-color"`
}

// ApplyDefaults fills zero values with the built-in defaults.
func (v *ShopifyValues) ApplyDefaults() {
	if v.WeightBaseKg == 0 {
		v.WeightBaseKg = 0.5
	}
	if v.WeightAreaFactor == 0 {
		v.WeightAreaFactor = 0.0001
	}
	if v.InventoryPolicy == "" {
		v.InventoryPolicy = "deny"
	}
	if v.DefaultStatus == "" {
		v.DefaultStatus = "ACTIVE"
	}
	if v.DefaultColor == "" {
		v.DefaultColor = "Default"
	}
}

// ColorConfig carries the known-color list used by grouping and the
// abbreviation table used when recovering colors from marketplace SKUs.
type ColorConfig struct {
	Known         []string          `yaml:"known"`
	Abbreviations map[string]string `yaml:"abbreviations"`
}

func (c *ColorConfig) ApplyDefaults() {
	if len(c.Known) == 0 {
		c.Known = KnownColors()
	}
	if len(c.Abbreviations) == 0 {
		c.Abbreviations = ColorAbbreviations()
	}
}

// KnownColors returns the built-in color vocabulary.
func KnownColors() []string {
	return []string{
		"Black", "White", "Grey", "Gray", "Silver", "Cream", "Ivory",
		"Beige", "Natural", "Brown", "Red", "Burgundy", "Orange",
		"Yellow", "Gold", "Green", "Olive", "Teal", "Blue", "Navy",
		"Purple", "Lilac", "Pink", "Charcoal", "Taupe", "Mocha",
	}
}

// ColorAbbreviations returns the built-in SKU-suffix abbreviation table.
func ColorAbbreviations() map[string]string {
	return map[string]string{
		"BK":  "Black",
		"BLK": "Black",
		"W":   "White",
		"WH":  "White",
		"WHT": "White",
		"GY":  "Grey",
		"GRY": "Grey",
		"SIL": "Silver",
		"CR":  "Cream",
		"CRM": "Cream",
		"BE":  "Beige",
		"NAT": "Natural",
		"BR":  "Brown",
		"BRN": "Brown",
		"R":   "Red",
		"RD":  "Red",
		"OR":  "Orange",
		"Y":   "Yellow",
		"YL":  "Yellow",
		"GD":  "Gold",
		"GR":  "Green",
		"GRN": "Green",
		"TL":  "Teal",
		"BL":  "Blue",
		"BLU": "Blue",
		"NV":  "Navy",
		"PU":  "Purple",
		"PK":  "Pink",
		"CH":  "Charcoal",
	}
}
