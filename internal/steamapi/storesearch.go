package steamapi

import "net/url"

type storeSearchResponse struct {
	Items []StoreItem `json:"items"`
}

// StoreSearch searches the store catalogue. countryCode localizes pricing
// and availability; empty defaults to "us".
func (c *Client) StoreSearch(term, countryCode string) ([]StoreItem, error) {
	if countryCode == "" {
		countryCode = "us"
	}

	query := url.Values{}
	query.Set("term", term)
	query.Set("l", "english")
	query.Set("cc", countryCode)

	var result storeSearchResponse
	if err := c.getJSON(c.storeBase, "/api/storesearch", query, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}
