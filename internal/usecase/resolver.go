package usecase

import (
	"context"
	"strings"

	"github.com/janscope/backend/internal/domain"
	"github.com/janscope/backend/internal/infrastructure/rakuten"
	"github.com/janscope/backend/internal/observe"
)

// ProductResolver locates the source product for a shop code and item code
// through a strictly sequential two-stage search protocol.
type ProductResolver struct {
	client    domain.MarketClient
	extractor *IdentifierExtractor
	fetcher   domain.PageFetcher
	sink      observe.Sink
}

// NewProductResolver creates a resolver with its collaborators.
func NewProductResolver(
	client domain.MarketClient,
	extractor *IdentifierExtractor,
	fetcher domain.PageFetcher,
	sink observe.Sink,
) *ProductResolver {
	return &ProductResolver{
		client:    client,
		extractor: extractor,
		fetcher:   fetcher,
		sink:      observe.OrNop(sink),
	}
}

// Resolve finds the product behind shopCode/itemCode.
//
// Stage 1 searches the shop with the item code as keyword and selects the
// first result whose URL contains the item code. Stage 2 derives a keyword
// from the listing page title and repeats the shop search, taking the first
// result. When both stages come up empty the product does not resolve and
// ErrProductNotFound is returned. Search failures degrade to zero items and
// advance the protocol; they are never surfaced.
func (r *ProductResolver) Resolve(ctx context.Context, shopCode, itemCode string) (*domain.Product, error) {
	// Stage 1: the item code usually appears verbatim in the listing URL.
	items := r.searchShop(ctx, shopCode, itemCode, "id-match")
	for _, item := range items {
		if strings.Contains(item.URL, itemCode) {
			r.sink.Event("resolve.stage1.hit", observe.Fields{"shop": shopCode, "item": itemCode})
			return r.buildProduct(ctx, item), nil
		}
	}

	// Stage 2: recover a keyword from the page title and search again.
	r.sink.Event("resolve.stage2", observe.Fields{"shop": shopCode, "item": itemCode})
	keyword := r.fetcher.ScrapeTitleKeyword(ctx, rakuten.ItemURL(shopCode, itemCode))
	if keyword != "" {
		items = r.searchShop(ctx, shopCode, keyword, "title-fallback")
		if len(items) > 0 {
			r.sink.Event("resolve.stage2.hit", observe.Fields{"shop": shopCode, "keyword": keyword})
			return r.buildProduct(ctx, items[0]), nil
		}
	}

	r.sink.Event("resolve.notfound", observe.Fields{"shop": shopCode, "item": itemCode})
	return nil, domain.ErrProductNotFound
}

// searchShop runs one shop-scoped keyword search, absorbing API failures
// into an empty result.
func (r *ProductResolver) searchShop(ctx context.Context, shopCode, keyword, stage string) []domain.MarketItem {
	items, err := r.client.SearchShopKeyword(ctx, shopCode, keyword, domain.ResolutionHits)
	if err != nil {
		r.sink.Event("resolve.search.degraded", observe.Fields{"stage": stage, "error": err.Error()})
		return nil
	}
	return items
}

// buildProduct maps a matched item to the immutable Product record, running
// the full extraction cascade including the page fetch.
func (r *ProductResolver) buildProduct(ctx context.Context, item domain.MarketItem) *domain.Product {
	identifier := r.extractor.Extract(ctx, item, true)

	return &domain.Product{
		Name:       item.Name,
		Price:      item.Price,
		CategoryID: item.GenreID,
		ShopID:     item.ShopCode,
		ShopName:   item.ShopName,
		ImageURL:   item.ImageURL,
		URL:        item.URL,
		Identifier: identifier,
	}
}
