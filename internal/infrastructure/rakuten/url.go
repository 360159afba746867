package rakuten

import (
	"fmt"
	"regexp"

	"github.com/janscope/backend/internal/domain"
)

// itemURLPattern matches marketplace listing URLs of the form
// item.rakuten.co.jp/<shopCode>/<itemCode>/ anywhere in the input.
var itemURLPattern = regexp.MustCompile(`item\.rakuten\.co\.jp/([^/]+)/([^/?#]+)`)

// ParseItemURL extracts the shop code and item code from a listing URL.
func ParseItemURL(rawURL string) (shopCode, itemCode string, err error) {
	match := itemURLPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidListingURL, rawURL)
	}
	return match[1], match[2], nil
}

// ItemURL builds the canonical listing URL for a shop code and item code.
func ItemURL(shopCode, itemCode string) string {
	return fmt.Sprintf("https://item.rakuten.co.jp/%s/%s/", shopCode, itemCode)
}
