package usecase

import (
	"context"

	"github.com/janscope/backend/internal/domain"
	"github.com/janscope/backend/internal/observe"
)

// extractStrategy is one cheap identifier source. Strategies are tried in
// order; the first checksum-valid code wins.
type extractStrategy struct {
	source domain.IdentifierSource
	find   func(item domain.MarketItem) string
}

// IdentifierExtractor mines a search-result item for a JAN code using a
// fixed-priority cascade: the API-supplied field, 13-digit runs in the item
// URL, 13-digit runs in the caption, and optionally a full page scrape.
type IdentifierExtractor struct {
	fetcher    domain.PageFetcher
	sink       observe.Sink
	strategies []extractStrategy
}

// NewIdentifierExtractor creates an extractor. The fetcher is only consulted
// when a caller allows page fetches; a nil sink disables event reporting.
func NewIdentifierExtractor(fetcher domain.PageFetcher, sink observe.Sink) *IdentifierExtractor {
	return &IdentifierExtractor{
		fetcher: fetcher,
		sink:    observe.OrNop(sink),
		strategies: []extractStrategy{
			{
				source: domain.SourceFieldSupplied,
				find: func(item domain.MarketItem) string {
					if domain.IsValidJAN(item.JAN) {
						return item.JAN
					}
					return ""
				},
			},
			{
				source: domain.SourceURLEmbedded,
				find: func(item domain.MarketItem) string {
					return domain.FirstValidJAN(item.URL)
				},
			},
			{
				source: domain.SourceCaptionEmbedded,
				find: func(item domain.MarketItem) string {
					return domain.FirstValidJAN(item.Caption)
				},
			},
		},
	}
}

// Extract runs the cascade over one item. Malformed or missing fields are
// skipped, never an error; the zero Identifier means no strategy produced a
// valid code. The page fetch runs only when allowPageFetch is true and the
// item has a URL.
func (e *IdentifierExtractor) Extract(ctx context.Context, item domain.MarketItem, allowPageFetch bool) domain.Identifier {
	for _, strategy := range e.strategies {
		if code := strategy.find(item); code != "" {
			e.sink.Event("extract.hit", observe.Fields{"source": string(strategy.source)})
			return domain.Identifier{Code: code, Source: strategy.source}
		}
	}

	if allowPageFetch && item.URL != "" && e.fetcher != nil {
		if code := e.fetcher.ScrapeIdentifier(ctx, item.URL); code != "" {
			e.sink.Event("extract.hit", observe.Fields{"source": string(domain.SourceScrapedPage)})
			return domain.Identifier{Code: code, Source: domain.SourceScrapedPage}
		}
	}

	e.sink.Event("extract.miss", observe.Fields{"url": item.URL})
	return domain.Identifier{}
}
