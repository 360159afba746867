package domain

// IdentifierSource records which extraction strategy produced a JAN code.
type IdentifierSource string

const (
	SourceFieldSupplied   IdentifierSource = "api"
	SourceURLEmbedded     IdentifierSource = "url"
	SourceCaptionEmbedded IdentifierSource = "caption"
	SourceScrapedPage     IdentifierSource = "scrape"
	SourceNone            IdentifierSource = ""
)

// Identifier is a validated JAN/EAN-13 code together with the strategy that
// produced it. A zero Identifier means no code could be found.
type Identifier struct {
	Code   string           `json:"code"`
	Source IdentifierSource `json:"source"`
}

// IsSet reports whether a code was found.
func (id Identifier) IsSet() bool {
	return id.Code != ""
}

// Product is the resolved source product that a competitor search is anchored
// on. It is built once per resolution call and not modified afterwards.
type Product struct {
	Name       string     `json:"name"`
	Price      int        `json:"price"`
	CategoryID string     `json:"categoryId"`
	ShopID     string     `json:"shopId"`
	ShopName   string     `json:"shopName"`
	ImageURL   string     `json:"imageUrl"`
	URL        string     `json:"url"`
	Identifier Identifier `json:"identifier"`
}

// CompetitorListing is one search-result item from a competing shop. Its
// Identifier may be filled in exactly once during enrichment (None to
// ScrapedPage); it is never touched after the final sort.
type CompetitorListing struct {
	Name       string     `json:"name"`
	Price      int        `json:"price"`
	ShopName   string     `json:"shopName"`
	ImageURL   string     `json:"imageUrl"`
	URL        string     `json:"url"`
	Identifier Identifier `json:"identifier"`
}

// MarketItem is a single item as returned by the marketplace search API,
// mapped out of its wire envelope. Field names mirror the API vocabulary.
type MarketItem struct {
	Name     string
	Price    int
	GenreID  string
	ShopCode string
	ShopName string
	URL      string
	Caption  string
	JAN      string
	ImageURL string
}
