package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/janscope/backend/internal/domain"
)

// Checksum-valid JAN codes used across the usecase tests.
const (
	janA = "4901234567894"
	janB = "4512345678906"
	janC = "1312345678905"
	janD = "4987654321094"
	// janDecoy is 13 digits but fails the checksum.
	janDecoy = "4901234567890"
)

type shopQuery struct {
	shopCode string
	keyword  string
	hits     int
}

type genreQuery struct {
	genreID string
	band    domain.PriceBand
	hits    int
}

// stubMarketClient records every search and serves canned results. Shop
// searches are keyed by keyword.
type stubMarketClient struct {
	mu           sync.Mutex
	shopQueries  []shopQuery
	shopResults  map[string][]domain.MarketItem
	shopErr      error
	genreQueries []genreQuery
	genreItems   []domain.MarketItem
	genreErr     error
}

func (s *stubMarketClient) SearchShopKeyword(_ context.Context, shopCode, keyword string, hits int) ([]domain.MarketItem, error) {
	s.mu.Lock()
	s.shopQueries = append(s.shopQueries, shopQuery{shopCode, keyword, hits})
	s.mu.Unlock()

	if s.shopErr != nil {
		return nil, s.shopErr
	}
	return s.shopResults[keyword], nil
}

func (s *stubMarketClient) SearchGenre(_ context.Context, genreID string, band domain.PriceBand, hits int) ([]domain.MarketItem, error) {
	s.mu.Lock()
	s.genreQueries = append(s.genreQueries, genreQuery{genreID, band, hits})
	s.mu.Unlock()

	if s.genreErr != nil {
		return nil, s.genreErr
	}
	return s.genreItems, nil
}

// stubFetcher serves canned scrape results keyed by URL and tracks the peak
// number of concurrent ScrapeIdentifier calls.
type stubFetcher struct {
	identifiers   map[string]string
	titleKeywords map[string]string
	delay         time.Duration

	mu           sync.Mutex
	scrapeCalls  int
	keywordCalls int
	active       int
	peakActive   int
}

func (s *stubFetcher) ScrapeIdentifier(_ context.Context, pageURL string) string {
	s.mu.Lock()
	s.scrapeCalls++
	s.active++
	if s.active > s.peakActive {
		s.peakActive = s.active
	}
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	s.active--
	s.mu.Unlock()

	return s.identifiers[pageURL]
}

func (s *stubFetcher) ScrapeTitleKeyword(_ context.Context, pageURL string) string {
	s.mu.Lock()
	s.keywordCalls++
	s.mu.Unlock()

	return s.titleKeywords[pageURL]
}
