package friends

import (
	"sort"
	"strings"

	"github.com/INikonI/steam-giveaway-tool/internal/filters"
	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
	"go.uber.org/zap"
)

// summariesBatchSize is the practical ceiling of ids per summaries request.
const summariesBatchSize = 100

// DirectoryClient is the slice of the Steam client the pipeline needs.
type DirectoryClient interface {
	GetFriendList(relationship steamapi.RelationshipFilter, userID steamapi.SteamID) ([]steamapi.Friend, error)
	GetUserSummaries(ids []steamapi.SteamID) ([]steamapi.User, error)
}

// Friends holds the full roster, the derived filtered roster and the
// distinct regions observed. The filtered roster is disposable: it is only
// ever replaced wholesale by UpdateFiltered, never mutated.
type Friends struct {
	All      []steamapi.User
	Filtered []steamapi.User
	Regions  []string

	IsLoading       bool
	LoadingProgress float32
}

// Fetch loads the full friend roster: the friend-relationship list is
// partitioned into fixed-size batches and each batch is resolved to full
// summaries. A failed batch is skipped rather than aborting the run, so the
// roster is best-effort. progress is reported in (0, 1] after every batch,
// in batch-completion order.
func Fetch(client DirectoryClient, progress func(float32)) ([]steamapi.User, []string, error) {
	list, err := client.GetFriendList(steamapi.RelationshipFilterFriend, 0)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]steamapi.SteamID, len(list))
	for i, friend := range list {
		ids[i] = friend.ID
	}

	batches := chunkIDs(ids, summariesBatchSize)
	roster := make([]steamapi.User, 0, len(ids))

	for n, batch := range batches {
		users, err := client.GetUserSummaries(batch)
		if err != nil {
			logger.Warn("Skipping friend summaries batch",
				zap.Int("batch", n),
				zap.Int("size", len(batch)),
				zap.Error(err))
		} else {
			roster = append(roster, users...)
		}

		if progress != nil {
			progress(float32(n+1) / float32(len(batches)))
		}
	}

	return roster, distinctRegions(roster), nil
}

// UpdateFiltered recomputes the filtered roster from the full roster and the
// current filter configuration. A no-op while the full roster is empty.
func (f *Friends) UpdateFiltered(flt *filters.Filters, wonBefore map[steamapi.SteamID]int, giveawayDetails *steamapi.StoreItemUserDetails) {
	if len(f.All) == 0 {
		return
	}
	f.Filtered = flt.Apply(f.All, wonBefore, giveawayDetails)
}

// SearchByName returns roster members whose display name contains the term,
// case-insensitively. An empty term matches nothing.
func (f *Friends) SearchByName(term string) []steamapi.User {
	if term == "" {
		return nil
	}

	term = strings.ToLower(term)
	var found []steamapi.User
	for _, friend := range f.All {
		if strings.Contains(strings.ToLower(friend.Name), term) {
			found = append(found, friend)
		}
	}
	return found
}

func chunkIDs(ids []steamapi.SteamID, size int) [][]steamapi.SteamID {
	var chunks [][]steamapi.SteamID
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

// distinctRegions is the lexicographically sorted set of country codes seen
// in the roster. Members without a country contribute nothing.
func distinctRegions(roster []steamapi.User) []string {
	seen := make(map[string]struct{})
	for _, friend := range roster {
		if friend.CountryCode != nil {
			seen[*friend.CountryCode] = struct{}{}
		}
	}

	regions := make([]string, 0, len(seen))
	for region := range seen {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}
