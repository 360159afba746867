package usecase

import (
	"context"
	"sort"

	"github.com/janscope/backend/internal/domain"
	"github.com/janscope/backend/internal/observe"
	"github.com/janscope/backend/internal/worker"
)

// DefaultEnrichmentWorkers bounds the concurrent page scrapes run while
// enriching listings that the cheap sources left without an identifier.
const DefaultEnrichmentWorkers = 5

// CompetitorCollector searches a category and price band for competing
// listings and attaches JAN codes to as many of them as possible.
type CompetitorCollector struct {
	client    domain.MarketClient
	extractor *IdentifierExtractor
	fetcher   domain.PageFetcher
	sink      observe.Sink
	workers   int
}

// NewCompetitorCollector creates a collector. A non-positive workers value
// falls back to DefaultEnrichmentWorkers.
func NewCompetitorCollector(
	client domain.MarketClient,
	extractor *IdentifierExtractor,
	fetcher domain.PageFetcher,
	sink observe.Sink,
	workers int,
) *CompetitorCollector {
	if workers <= 0 {
		workers = DefaultEnrichmentWorkers
	}
	return &CompetitorCollector{
		client:    client,
		extractor: extractor,
		fetcher:   fetcher,
		sink:      observe.OrNop(sink),
		workers:   workers,
	}
}

// Collect runs one competitor search and returns the enriched, ordered
// listing sequence. Items from the excluded shop are dropped; remaining
// items get the cheap extraction cascade, and listings still missing a code
// are scraped over a bounded worker pool. A failed search or an all-excluded
// result set yields an empty sequence, never an error.
func (c *CompetitorCollector) Collect(ctx context.Context, criteria domain.SearchCriteria) []domain.CompetitorListing {
	items, err := c.client.SearchGenre(ctx, criteria.CategoryID, criteria.Band, domain.CompetitorHits)
	if err != nil {
		c.sink.Event("collect.search.degraded", observe.Fields{"genre": criteria.CategoryID, "error": err.Error()})
		return []domain.CompetitorListing{}
	}

	listings := make([]domain.CompetitorListing, 0, len(items))
	var missing []int
	for _, item := range items {
		if item.ShopCode == criteria.ExcludedShopID {
			continue
		}

		identifier := c.extractor.Extract(ctx, item, false)
		listings = append(listings, domain.CompetitorListing{
			Name:       item.Name,
			Price:      item.Price,
			ShopName:   item.ShopName,
			ImageURL:   item.ImageURL,
			URL:        item.URL,
			Identifier: identifier,
		})
		if !identifier.IsSet() {
			missing = append(missing, len(listings)-1)
		}
	}

	c.enrich(ctx, listings, missing)
	sortListings(listings)
	return listings
}

// enrich scrapes the listing pages of every index in missing over a bounded
// pool. Each task owns exactly one listing slot, so writes never race; a
// failed scrape leaves its listing untouched and never affects siblings.
// The pool drains completely before the caller proceeds to the sort.
func (c *CompetitorCollector) enrich(ctx context.Context, listings []domain.CompetitorListing, missing []int) {
	if len(missing) == 0 {
		return
	}
	c.sink.Event("collect.enrich.batch", observe.Fields{"size": len(missing), "workers": c.workers})

	pool := worker.NewPool(c.workers)
	for _, idx := range missing {
		idx := idx
		pool.Submit(func() {
			code := c.fetcher.ScrapeIdentifier(ctx, listings[idx].URL)
			if code != "" {
				listings[idx].Identifier = domain.Identifier{Code: code, Source: domain.SourceScrapedPage}
			}
		})
	}
	pool.Wait()
}

// sortListings orders listings with identifiers first, then by ascending
// name within each group.
func sortListings(listings []domain.CompetitorListing) {
	sort.SliceStable(listings, func(i, j int) bool {
		iSet, jSet := listings[i].Identifier.IsSet(), listings[j].Identifier.IsSet()
		if iSet != jSet {
			return iSet
		}
		return listings[i].Name < listings[j].Name
	})
}
