package filters

import (
	"encoding/json"
	"fmt"

	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

// CISCountries and EUCountries are the fixed, disjoint region groups
// selectable as a unit.
var CISCountries = []string{
	"AM", "AZ", "BY", "KZ", "KG", "MD", "RU", "TJ", "UA", "UZ", "TM", "GE",
}

var EUCountries = []string{
	"AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR", "DE", "GR",
	"HU", "IE", "IT", "LV", "LT", "LU", "MT", "NL", "PL", "PT", "RO", "SK",
	"SI", "ES", "SE",
}

// RegionFilter is the tri-state of one region selector.
type RegionFilter int

const (
	RegionAvailable RegionFilter = iota
	RegionInclude
	RegionExclude
)

func (r RegionFilter) String() string {
	switch r {
	case RegionInclude:
		return "include"
	case RegionExclude:
		return "exclude"
	default:
		return "available"
	}
}

func (r RegionFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RegionFilter) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "available", "":
		*r = RegionAvailable
	case "include":
		*r = RegionInclude
	case "exclude":
		*r = RegionExclude
	default:
		return fmt.Errorf("unknown region filter state %q", s)
	}
	return nil
}

// RegionsAndCountriesFilter combines the tri-state group selectors with
// free-form country include/exclude lists. AvailableCountries mirrors the
// distinct regions of the current roster and is display-only.
type RegionsAndCountriesFilter struct {
	AvailableCountries []string `json:"available_countries"`
	IncludeCountries   []string `json:"include_countries"`
	ExcludeCountries   []string `json:"exclude_countries"`

	// Unknown selects members without a profile country.
	Unknown RegionFilter `json:"unknown"`
	CIS     RegionFilter `json:"cis"`
	EU      RegionFilter `json:"eu"`
}

// applyRegionFilters runs the include pass then the exclude pass. Each pass
// engages only when at least one of its selectors is active; a member with
// no country code matches only the "unknown" selector.
func applyRegionFilters(friends []steamapi.User, f *RegionsAndCountriesFilter) []steamapi.User {
	includeUnknown := f.Unknown == RegionInclude
	includeCIS := f.CIS == RegionInclude
	includeEU := f.EU == RegionInclude
	includeCountries := len(f.IncludeCountries) > 0

	if includeCountries || includeUnknown || includeCIS || includeEU {
		friends = retain(friends, func(friend *steamapi.User) bool {
			if friend.CountryCode == nil {
				return includeUnknown
			}
			country := *friend.CountryCode
			if includeCIS && containsCountry(CISCountries, country) {
				return true
			}
			if includeEU && containsCountry(EUCountries, country) {
				return true
			}
			if includeCountries && containsCountry(f.IncludeCountries, country) {
				return true
			}
			return false
		})
	}

	excludeUnknown := f.Unknown == RegionExclude
	excludeCIS := f.CIS == RegionExclude
	excludeEU := f.EU == RegionExclude
	excludeCountries := len(f.ExcludeCountries) > 0

	if excludeCountries || excludeUnknown || excludeCIS || excludeEU {
		friends = retain(friends, func(friend *steamapi.User) bool {
			if friend.CountryCode == nil {
				return !excludeUnknown
			}
			country := *friend.CountryCode
			if excludeCIS && containsCountry(CISCountries, country) {
				return false
			}
			if excludeEU && containsCountry(EUCountries, country) {
				return false
			}
			if excludeCountries && containsCountry(f.ExcludeCountries, country) {
				return false
			}
			return true
		})
	}

	return friends
}

func containsCountry(countries []string, country string) bool {
	for _, c := range countries {
		if c == country {
			return true
		}
	}
	return false
}
