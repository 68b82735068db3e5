package steamapi

import "net/url"

type getUserSummariesResponse struct {
	Players []User `json:"players"`
}

// GetUserSummaries returns full profiles for the given ids. The endpoint
// caps one request at 100 ids; callers are responsible for chunking.
func (c *Client) GetUserSummaries(ids []SteamID) ([]User, error) {
	query := url.Values{}
	query.Set("access_token", c.token())
	query.Set("steamids", joinSteamIDs(ids))

	var result getUserSummariesResponse
	if err := c.getJSON(c.apiBase, "/ISteamUserOAuth/GetUserSummaries/v1", query, &result); err != nil {
		return nil, err
	}
	return result.Players, nil
}
