package steamapi

import "net/url"

type getUserCountryResponse struct {
	Response struct {
		Country string `json:"country"`
	} `json:"response"`
}

// GetCurrentUserCountry returns the real (account-level) ISO 3166-2 country
// of the given user, which may differ from the public profile country.
func (c *Client) GetCurrentUserCountry(userID SteamID) (string, error) {
	form := url.Values{}
	form.Set("access_token", c.token())
	form.Set("steamid", userID.String())

	var result getUserCountryResponse
	if err := c.postFormJSON(c.apiBase, "/IUserAccountService/GetUserCountry/v1", form, &result); err != nil {
		return "", err
	}
	return result.Response.Country, nil
}
