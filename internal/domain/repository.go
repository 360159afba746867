package domain

import "context"

// MarketClient defines the interface for the marketplace item search API.
// Both calls return the mapped item list; a transport error or non-success
// status surfaces as ErrMarketAPIFailure, which callers treat as zero items.
type MarketClient interface {
	// SearchShopKeyword runs a keyword search scoped to a single shop.
	SearchShopKeyword(ctx context.Context, shopCode, keyword string, hits int) ([]MarketItem, error)

	// SearchGenre runs a category search bounded by an inclusive price band.
	SearchGenre(ctx context.Context, genreID string, band PriceBand, hits int) ([]MarketItem, error)
}

// PageFetcher fetches a listing page and mines it for product signals.
// Failures of any kind are absorbed and reported as an empty string.
type PageFetcher interface {
	// ScrapeIdentifier returns the first checksum-valid JAN code found in the
	// page text, or "" if the fetch or the search fails.
	ScrapeIdentifier(ctx context.Context, pageURL string) string

	// ScrapeTitleKeyword derives a short search keyword from the page title,
	// or "" if the title is absent or not a marketplace listing title.
	ScrapeTitleKeyword(ctx context.Context, pageURL string) string
}
