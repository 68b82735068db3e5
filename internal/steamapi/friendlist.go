package steamapi

import "net/url"

type getFriendListResponse struct {
	Friends []Friend `json:"friends"`
}

// GetFriendList returns the raw friend list of the token's subject, or of
// userID when non-zero.
func (c *Client) GetFriendList(relationship RelationshipFilter, userID SteamID) ([]Friend, error) {
	query := url.Values{}
	query.Set("access_token", c.token())
	query.Set("relationship", string(relationship))
	if userID != 0 {
		query.Set("steamid", userID.String())
	} else {
		query.Set("steamid", "")
	}

	var result getFriendListResponse
	if err := c.getJSON(c.apiBase, "/ISteamUserOAuth/GetFriendList/v1", query, &result); err != nil {
		return nil, err
	}
	return result.Friends, nil
}
