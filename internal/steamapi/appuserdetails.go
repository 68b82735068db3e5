package steamapi

import (
	"fmt"
	"net/url"
	"strconv"
)

type appUserDetailsWrapper struct {
	Data *StoreItemUserDetails `json:"data"`
}

// AppUserDetails returns ownership/wishlist details per item id. Items the
// store has no data for (in the current viewer context) map to nil. The
// endpoint takes no token; the viewer context comes from the login cookie.
func (c *Client) AppUserDetails(itemIDs []StoreItemID) (map[StoreItemID]*StoreItemUserDetails, error) {
	query := url.Values{}
	query.Set("appids", joinStoreItemIDs(itemIDs))

	var raw map[string]appUserDetailsWrapper
	if err := c.getJSON(c.storeBase, "/api/appuserdetails", query, &raw); err != nil {
		return nil, err
	}

	details := make(map[StoreItemID]*StoreItemUserDetails, len(raw))
	for key, wrapper := range raw {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid store item id %q in response: %w", key, err)
		}
		details[StoreItemID(id)] = wrapper.Data
	}
	return details, nil
}
