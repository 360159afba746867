package rakuten

import (
	"bytes"
	"encoding/json"

	"github.com/janscope/backend/internal/domain"
)

// searchResponse is the wire envelope of the item search API: an Items array
// of single-key wrappers around the actual item object.
type searchResponse struct {
	Items []itemWrapper `json:"Items"`
}

type itemWrapper struct {
	Item apiItem `json:"Item"`
}

type apiItem struct {
	ItemName        string        `json:"itemName"`
	ItemPrice       int           `json:"itemPrice"`
	GenreID         flexibleID    `json:"genreId"`
	ShopCode        string        `json:"shopCode"`
	ShopName        string        `json:"shopName"`
	ItemURL         string        `json:"itemUrl"`
	ItemCaption     string        `json:"itemCaption"`
	JAN             string        `json:"jan"`
	MediumImageURLs []mediumImage `json:"mediumImageUrls"`
}

type mediumImage struct {
	ImageURL string `json:"imageUrl"`
}

// flexibleID accepts an identifier sent either as a JSON string or as a bare
// number; it always travels as a string downstream.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// mapItems flattens the wire envelope into domain items.
func mapItems(envelope searchResponse) []domain.MarketItem {
	items := make([]domain.MarketItem, 0, len(envelope.Items))
	for _, wrapper := range envelope.Items {
		items = append(items, mapItem(wrapper.Item))
	}
	return items
}

// mapItem converts one wire item to the domain model.
func mapItem(item apiItem) domain.MarketItem {
	imageURL := ""
	if len(item.MediumImageURLs) > 0 {
		imageURL = item.MediumImageURLs[0].ImageURL
	}

	return domain.MarketItem{
		Name:     item.ItemName,
		Price:    item.ItemPrice,
		GenreID:  string(item.GenreID),
		ShopCode: item.ShopCode,
		ShopName: item.ShopName,
		URL:      item.ItemURL,
		Caption:  item.ItemCaption,
		JAN:      item.JAN,
		ImageURL: imageURL,
	}
}
