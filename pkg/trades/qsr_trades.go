// Package trades holds the normalized QSR (quick service restaurant)
// construction trade vocabulary and the proposal filename grammar built on it.
package trades

// NormalizedTrades is the master list of trades used in the system.
var NormalizedTrades = []string{
	"Architecture",
	"Bathrooms",
	"Building Materials",
	"Canopies",
	"Caulking",
	"Concrete",
	"Doors & Windows",
	"Drywall",
	"Dumpster Service",
	"Earthwork",
	"Excavation",
	"Final Cleaning",
	"Flooring",
	"Framing",
	"Glasswork",
	"Landscaping",
	"Low Voltage",
	"Masonry",
	"Mechanical",
	"Metals",
	"Painting",
	"Plumbing",
	"Roofing",
	"Steel",
	"Storefront",
	"Striping",
	"TAB",
	"Toilet Accessories",
	"TPO",
	"Trusses",
	"Utilities",
	"Welding",
	"Windows",
}

// TradeAliases maps the various ways people name trades (lower-case keys) to
// the normalized names above.
var TradeAliases = map[string]string{
	// Bathrooms
	"bathrooms": "Bathrooms",
	"bath":      "Bathrooms",

	// Canopies
	"canopies": "Canopies",
	"canopy":   "Canopies",

	// Caulking
	"caulking":           "Caulking",
	"sealant & caulking": "Caulking",
	"sealant":            "Caulking",

	// Concrete
	"concrete": "Concrete",

	// Doors & Windows
	"doors & windows": "Doors & Windows",
	"doors":           "Doors & Windows",
	"windows":         "Doors & Windows",
	"door and window": "Doors & Windows",

	// Drywall
	"drywall": "Drywall",

	// Dumpster Service
	"dumpster service":  "Dumpster Service",
	"dumpster":          "Dumpster Service",
	"trash service":     "Dumpster Service",
	"dumpster services": "Dumpster Service",

	// Earthwork
	"earthwork":          "Earthwork",
	"earthwork building": "Earthwork",

	// Excavation
	"excavation": "Excavation",

	// Final Cleaning
	"final cleaning":             "Final Cleaning",
	"post construction cleanup":  "Final Cleaning",
	"post construction cleaning": "Final Cleaning",
	"cleaning":                   "Final Cleaning",
	"cleanup":                    "Final Cleaning",
	"cleanup services":           "Final Cleaning",
	"cleanup service":            "Final Cleaning",

	// Flooring
	"flooring": "Flooring",

	// Framing
	"framing":             "Framing",
	"framing & carpentry": "Framing",
	"carpentry":           "Framing",

	// Glasswork
	"glasswork": "Glasswork",

	// Landscaping
	"landscaping": "Landscaping",
	"landscape":   "Landscaping",

	// Low Voltage
	"low voltage": "Low Voltage",

	// Masonry
	"masonry": "Masonry",

	// Mechanical
	"mechanical": "Mechanical",

	// Metals
	"metals": "Metals",

	// Misc Steel
	"misc steel":   "Steel",
	"steel (misc)": "Steel",

	// Painting
	"painting": "Painting",

	// Plumbing
	"plumbing": "Plumbing",

	// Roofing
	"roofing": "Roofing",
	"tpo":     "TPO", // also a specific roofing type

	// Steel
	"steel": "Steel",

	// Storefront
	"storefront": "Storefront",

	// Striping
	"striping":           "Striping",
	"striping & marking": "Striping",

	// SWPPP
	"swppp": "SWPPP",
	"swpp":  "SWPPP",

	// TAB
	"tab":                   "TAB",
	"test and balance":      "TAB",
	"testing and balancing": "TAB",

	// Toilet Accessories
	"toilet accessories": "Toilet Accessories",

	// Trusses
	"trusses": "Trusses",

	// Utilities
	"utilities": "Utilities",

	// Welding
	"welding": "Welding",
}
