package domain

// PriceMode selects how the competitor-search price band is derived.
type PriceMode string

const (
	// PriceModeAuto brackets the resolved product's price at ±30%.
	PriceModeAuto PriceMode = "auto"
	// PriceModeCustom uses caller-supplied bounds.
	PriceModeCustom PriceMode = "custom"
	// PriceModeUnrestricted searches the full price range.
	PriceModeUnrestricted PriceMode = "none"
)

// UnrestrictedMaxPrice is the upper bound used when no price restriction
// applies.
const UnrestrictedMaxPrice = 999999999

// PriceBand is an inclusive [Min, Max] price range scoping a competitor
// search. Min <= Max, both non-negative.
type PriceBand struct {
	Min  int       `json:"min"`
	Max  int       `json:"max"`
	Mode PriceMode `json:"mode"`
}

// SearchCriteria scopes one competitor search.
type SearchCriteria struct {
	CategoryID     string
	Band           PriceBand
	ExcludedShopID string
}

// Search result sizes are fixed by the pipeline contract.
const (
	// ResolutionHits is the result limit for shop-scoped resolution searches.
	ResolutionHits = 10
	// CompetitorHits is the result limit for the competitor genre search.
	CompetitorHits = 30
)

// DerivePriceBand computes the search price band for a resolved product
// price. Auto mode brackets the price at [floor(p*0.7), floor(p*1.3)];
// custom mode passes the supplied bounds through; unrestricted mode spans
// the whole range. Custom with no usable bounds falls back to auto.
func DerivePriceBand(mode PriceMode, productPrice int, customMin, customMax *int) PriceBand {
	switch mode {
	case PriceModeCustom:
		if customMin != nil && customMax != nil {
			return PriceBand{Min: *customMin, Max: *customMax, Mode: PriceModeCustom}
		}
	case PriceModeUnrestricted:
		return PriceBand{Min: 0, Max: UnrestrictedMaxPrice, Mode: PriceModeUnrestricted}
	}
	return PriceBand{
		Min:  productPrice * 7 / 10,
		Max:  productPrice * 13 / 10,
		Mode: PriceModeAuto,
	}
}
