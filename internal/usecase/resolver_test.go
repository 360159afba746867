package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/janscope/backend/internal/domain"
)

const (
	testShop     = "gadget-shop"
	testItemCode = "mouse-01"
	// canonical listing URL built from testShop/testItemCode
	testItemURL = "https://item.rakuten.co.jp/gadget-shop/mouse-01/"
)

func newResolver(client *stubMarketClient, fetcher *stubFetcher) *ProductResolver {
	extractor := NewIdentifierExtractor(fetcher, nil)
	return NewProductResolver(client, extractor, fetcher, nil)
}

func TestResolve_Stage1MatchesItemCodeInURL(t *testing.T) {
	client := &stubMarketClient{
		shopResults: map[string][]domain.MarketItem{
			testItemCode: {
				{Name: "Other", URL: "https://item.rakuten.co.jp/gadget-shop/keyboard-07/"},
				{
					Name:     "Wireless Mouse",
					Price:    2980,
					GenreID:  "559887",
					ShopCode: testShop,
					ShopName: "Gadget Shop",
					URL:      testItemURL,
					JAN:      janA,
				},
			},
		},
	}
	fetcher := &stubFetcher{}

	product, err := newResolver(client, fetcher).Resolve(context.Background(), testShop, testItemCode)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Wireless Mouse" {
		t.Errorf("Name = %q, want Wireless Mouse", product.Name)
	}
	if product.CategoryID != "559887" {
		t.Errorf("CategoryID = %q, want 559887", product.CategoryID)
	}
	if product.Identifier.Code != janA || product.Identifier.Source != domain.SourceFieldSupplied {
		t.Errorf("Identifier = %+v, want field-supplied %s", product.Identifier, janA)
	}
	if len(client.shopQueries) != 1 {
		t.Errorf("search calls = %d, want 1", len(client.shopQueries))
	}
	if q := client.shopQueries[0]; q.shopCode != testShop || q.keyword != testItemCode || q.hits != domain.ResolutionHits {
		t.Errorf("query = %+v", q)
	}
}

func TestResolve_Stage1SelectsFirstMatching(t *testing.T) {
	client := &stubMarketClient{
		shopResults: map[string][]domain.MarketItem{
			testItemCode: {
				{Name: "First", URL: "https://item.rakuten.co.jp/gadget-shop/mouse-01-red/"},
				{Name: "Second", URL: testItemURL},
			},
		},
	}

	product, err := newResolver(client, &stubFetcher{}).Resolve(context.Background(), testShop, testItemCode)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both URLs contain the item code; result order decides.
	if product.Name != "First" {
		t.Errorf("Name = %q, want First", product.Name)
	}
}

func TestResolve_Stage1EscalatesToPageScrape(t *testing.T) {
	// The matched item exposes no cheap identifier source, so resolution
	// reaches into the listing page itself.
	client := &stubMarketClient{
		shopResults: map[string][]domain.MarketItem{
			testItemCode: {{Name: "Bare Item", URL: testItemURL}},
		},
	}
	fetcher := &stubFetcher{identifiers: map[string]string{testItemURL: janD}}

	product, err := newResolver(client, fetcher).Resolve(context.Background(), testShop, testItemCode)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Identifier.Code != janD || product.Identifier.Source != domain.SourceScrapedPage {
		t.Errorf("Identifier = %+v, want scraped %s", product.Identifier, janD)
	}
}

func TestResolve_Stage2TitleFallback(t *testing.T) {
	client := &stubMarketClient{
		shopResults: map[string][]domain.MarketItem{
			// Stage 1 finds items, but none carry the item code in its URL.
			testItemCode: {{Name: "Unrelated", URL: "https://item.rakuten.co.jp/gadget-shop/other/"}},
			"Premium Wireless Mouse": {{
				Name:     "Premium Wireless Mouse",
				Price:    3980,
				ShopCode: testShop,
				URL:      "https://item.rakuten.co.jp/gadget-shop/mouse-01b/",
			}},
		},
	}
	fetcher := &stubFetcher{
		titleKeywords: map[string]string{testItemURL: "Premium Wireless Mouse"},
	}

	product, err := newResolver(client, fetcher).Resolve(context.Background(), testShop, testItemCode)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Premium Wireless Mouse" {
		t.Errorf("Name = %q, want Premium Wireless Mouse", product.Name)
	}
	if len(client.shopQueries) != 2 {
		t.Fatalf("search calls = %d, want 2", len(client.shopQueries))
	}
	if q := client.shopQueries[1]; q.keyword != "Premium Wireless Mouse" || q.shopCode != testShop {
		t.Errorf("stage 2 query = %+v", q)
	}
	if fetcher.keywordCalls != 1 {
		t.Errorf("keywordCalls = %d, want 1", fetcher.keywordCalls)
	}
}

func TestResolve_NotFoundWhenBothStagesEmpty(t *testing.T) {
	client := &stubMarketClient{
		shopResults: map[string][]domain.MarketItem{
			testItemCode:             {{Name: "Unrelated", URL: "https://item.rakuten.co.jp/gadget-shop/other/"}},
			"Premium Wireless Mouse": {},
		},
	}
	fetcher := &stubFetcher{
		titleKeywords: map[string]string{testItemURL: "Premium Wireless Mouse"},
	}

	_, err := newResolver(client, fetcher).Resolve(context.Background(), testShop, testItemCode)

	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}
	if len(client.shopQueries) != 2 {
		t.Errorf("search calls = %d, want exactly 2 (no retries)", len(client.shopQueries))
	}
}

func TestResolve_NotFoundWithoutTitleKeyword(t *testing.T) {
	client := &stubMarketClient{}
	fetcher := &stubFetcher{} // title scrape fails, keyword empty

	_, err := newResolver(client, fetcher).Resolve(context.Background(), testShop, testItemCode)

	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}
	// The stage 2 search must not run without a keyword.
	if len(client.shopQueries) != 1 {
		t.Errorf("search calls = %d, want 1", len(client.shopQueries))
	}
}

func TestResolve_SearchFailureDegradesToStage2(t *testing.T) {
	client := &stubMarketClient{shopErr: domain.ErrMarketAPIFailure}
	fetcher := &stubFetcher{}

	_, err := newResolver(client, fetcher).Resolve(context.Background(), testShop, testItemCode)

	// The API failure is absorbed; the protocol continues and terminates as
	// not found rather than surfacing a transport error.
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}
	if fetcher.keywordCalls != 1 {
		t.Errorf("keywordCalls = %d, want 1 (stage 2 reached)", fetcher.keywordCalls)
	}
}
