// Package scrape fetches marketplace listing pages and mines their text for
// product signals. Every failure is absorbed and reported as an empty
// result; a broken page never propagates an error into the pipeline.
package scrape

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/janscope/backend/internal/domain"
	"github.com/janscope/backend/internal/observe"
)

// DefaultUserAgent is a realistic browser user agent; listing pages answer
// differently to obvious bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// DefaultTimeout bounds one page fetch.
const DefaultTimeout = 5 * time.Second

// labeledJANPatterns match an explicit JAN/EAN label followed by optional
// punctuation and a 13-digit code. Tried in order; the first pattern whose
// match validates wins.
var labeledJANPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)JAN[コード：:\s]*([0-9]{13})`),
	regexp.MustCompile(`(?i)JANコード[：:\s]*([0-9]{13})`),
	regexp.MustCompile(`(?i)EAN[：:\s]*([0-9]{13})`),
}

// brandingMarker prefixes marketplace listing page titles.
const brandingMarker = "【楽天市場】"

// titleKeywordWords is how many leading title words form a search keyword.
const titleKeywordWords = 5

// Fetcher retrieves listing pages over plain HTTP and extracts identifiers
// and title keywords from their text.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	sink       observe.Sink
}

// NewFetcher creates a page fetcher. Zero timeout and empty userAgent fall
// back to the package defaults; a nil sink disables event reporting.
func NewFetcher(timeout time.Duration, userAgent string, sink observe.Sink) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		sink:       observe.OrNop(sink),
	}
}

// ScrapeIdentifier fetches pageURL and returns the first checksum-valid JAN
// code found in its text, or "" on any failure. Labeled JAN/EAN mentions are
// preferred; among unlabeled candidates, codes with the local GS1 prefixes
// 45/49 win over other valid codes.
func (f *Fetcher) ScrapeIdentifier(ctx context.Context, pageURL string) string {
	doc, ok := f.fetch(ctx, pageURL)
	if !ok {
		f.sink.Event("scrape.identifier.miss", observe.Fields{"url": pageURL, "reason": "fetch"})
		return ""
	}

	pageText := doc.Text()

	for _, pattern := range labeledJANPatterns {
		match := pattern.FindStringSubmatch(pageText)
		if match != nil && domain.IsValidJAN(match[1]) {
			f.sink.Event("scrape.identifier.hit", observe.Fields{"url": pageURL, "labeled": true})
			return match[1]
		}
	}

	candidates := domain.FindJANCandidates(pageText)
	for _, candidate := range candidates {
		if domain.IsValidJAN(candidate) && hasLocalPrefix(candidate) {
			f.sink.Event("scrape.identifier.hit", observe.Fields{"url": pageURL, "labeled": false})
			return candidate
		}
	}
	for _, candidate := range candidates {
		if domain.IsValidJAN(candidate) {
			f.sink.Event("scrape.identifier.hit", observe.Fields{"url": pageURL, "labeled": false})
			return candidate
		}
	}

	f.sink.Event("scrape.identifier.miss", observe.Fields{"url": pageURL, "reason": "no-candidate"})
	return ""
}

// ScrapeTitleKeyword fetches pageURL and derives a short search keyword from
// its title: the branding marker is stripped, the shop-name suffix after the
// first separator is dropped, and the first five words are kept. Returns ""
// when the title is absent or unbranded, or on any fetch failure.
func (f *Fetcher) ScrapeTitleKeyword(ctx context.Context, pageURL string) string {
	doc, ok := f.fetch(ctx, pageURL)
	if !ok {
		return ""
	}

	title := doc.Find("title").First().Text()
	if !strings.Contains(title, brandingMarker) {
		return ""
	}

	name := strings.ReplaceAll(title, brandingMarker, "")
	name = strings.TrimSpace(strings.SplitN(name, ":", 2)[0])

	words := strings.Fields(name)
	if len(words) > titleKeywordWords {
		words = words[:titleKeywordWords]
	}
	return strings.Join(words, " ")
}

// fetch retrieves and parses one page. The boolean is false on any
// transport, status or parse failure.
func (f *Fetcher) fetch(ctx context.Context, pageURL string) (*goquery.Document, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, false
	}
	return doc, true
}

// hasLocalPrefix reports whether a code carries one of the local-market GS1
// prefixes used as a tie-break preference.
func hasLocalPrefix(code string) bool {
	return strings.HasPrefix(code, "45") || strings.HasPrefix(code, "49")
}
