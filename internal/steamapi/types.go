package steamapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SteamID is a 64-bit Steam account identifier. The Steam APIs are
// inconsistent about encoding: some endpoints send it as a JSON number,
// others as a decimal string, so both are accepted on decode.
type SteamID uint64

func (id SteamID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func (id *SteamID) UnmarshalJSON(data []byte) error {
	n, err := parseWireUint(data, 64)
	if err != nil {
		return fmt.Errorf("invalid steamid %s: %w", data, err)
	}
	*id = SteamID(n)
	return nil
}

// StoreItemID is a 32-bit store item (app/package) identifier, wire-tolerant
// of string encoding like SteamID.
type StoreItemID uint32

func (id StoreItemID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func (id *StoreItemID) UnmarshalJSON(data []byte) error {
	n, err := parseWireUint(data, 32)
	if err != nil {
		return fmt.Errorf("invalid store item id %s: %w", data, err)
	}
	*id = StoreItemID(n)
	return nil
}

// parseWireUint accepts a JSON number or a quoted decimal string.
func parseWireUint(data []byte, bits int) (uint64, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, err
	}

	s := string(raw)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return 0, err
		}
		s = unquoted
	}
	return strconv.ParseUint(s, 10, bits)
}

// User is a Steam profile as returned by the summaries endpoints.
type User struct {
	ID        SteamID `json:"steamid"`
	Name      string  `json:"personaname"`
	AvatarURL string  `json:"avatarmedium"`

	// CountryCode is the ISO 3166-2 profile country. Nil when the profile
	// does not expose one. For the current user it is replaced by the real
	// country from the account service.
	CountryCode *string `json:"loccountrycode,omitempty"`

	// CreatedAt is the account creation time. The summaries endpoint only
	// includes it for public profiles, so it is frequently nil.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		TimeCreated int64 `json:"timecreated"`
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.TimeCreated > 0 {
		t := time.Unix(aux.TimeCreated, 0).UTC()
		u.CreatedAt = &t
	}
	return nil
}

// Relationship is the relation of a friend-list entry to the current user.
type Relationship string

const (
	RelationshipFriend  Relationship = "friend"
	RelationshipIgnored Relationship = "ignored"
)

// Friend is one entry of the raw friend list.
type Friend struct {
	ID           SteamID      `json:"steamid"`
	Relationship Relationship `json:"relationship"`
}

// RelationshipFilter selects which relations GetFriendList returns.
type RelationshipFilter string

const (
	RelationshipFilterAll     RelationshipFilter = "all"
	RelationshipFilterFriend  RelationshipFilter = "friend"
	RelationshipFilterIgnored RelationshipFilter = "ignored"
)

// StoreItemKind distinguishes apps from subscription packages.
type StoreItemKind string

const (
	StoreItemKindApp     StoreItemKind = "app"
	StoreItemKindSub     StoreItemKind = "sub"
	StoreItemKindUnknown StoreItemKind = "unknown"
)

func (k *StoreItemKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch StoreItemKind(s) {
	case StoreItemKindApp, StoreItemKindSub:
		*k = StoreItemKind(s)
	default:
		*k = StoreItemKindUnknown
	}
	return nil
}

// Price of a store item in the smallest currency unit.
type Price struct {
	// Currency is an ISO 4217 code.
	Currency     string `json:"currency"`
	ValueInCents uint32 `json:"final"`
}

// StoreItem is one store search result. Two items are the same item iff
// their IDs match; compare IDs, never whole values.
type StoreItem struct {
	Kind       StoreItemKind `json:"type"`
	ID         StoreItemID   `json:"id"`
	Name       string        `json:"name"`
	CapsuleURL string        `json:"tiny_image"`
	Price      *Price        `json:"price,omitempty"`

	// UserDetails is never sent by the search endpoint; it is attached on
	// demand from AppUserDetails.
	UserDetails *StoreItemUserDetails `json:"user_details,omitempty"`
}

// FriendOwn describes a friend owning an item, with playtime in minutes.
type FriendOwn struct {
	ID               SteamID `json:"steamid"`
	PlaytimeTwoWeeks uint16  `json:"playtime_twoweeks"`
	PlaytimeTotal    uint32  `json:"playtime_total"`
}

// FriendWant describes a friend wishlisting an item.
type FriendWant struct {
	ID SteamID `json:"steamid"`
}

// StoreItemUserDetails is the per-item ownership/wishlist data for the
// current viewer context.
type StoreItemUserDetails struct {
	FriendsOwn  []FriendOwn  `json:"friendsown"`
	FriendsWant []FriendWant `json:"friendswant"`
}
