package winners

import (
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

// Winners holds the per-draw state and the all-time win ledger. The ledger
// is the only part that survives reloads and restarts; Current is replaced
// wholesale by every draw.
type Winners struct {
	// NextNumber is how many winners the next draw selects. Callers keep it
	// clamped to [1, max(len(filtered), 1)].
	NextNumber int

	Current    []steamapi.User
	LastDrawID string

	AllTime map[steamapi.SteamID]int

	// Saved guards SaveCurrent against double-counting: a draw must be
	// committed at most once, and callers check Saved before committing.
	Saved           bool
	AutoSaveCurrent bool
}

func New() *Winners {
	return &Winners{
		NextNumber: 1,
		AllTime:    make(map[steamapi.SteamID]int),
		Saved:      true,
	}
}

// SaveCurrent commits the current draw into the all-time ledger, one
// increment per winner. It does not deduplicate repeated calls; checking
// Saved first is the caller's side of the contract.
func (w *Winners) SaveCurrent() {
	w.Saved = true
	for _, winner := range w.Current {
		w.AllTime[winner.ID]++
	}
}

// WinCount returns how many times the given account has won. Zero means the
// account never appeared in a committed draw.
func (w *Winners) WinCount(id steamapi.SteamID) int {
	return w.AllTime[id]
}

// SetAllTime replaces the ledger, e.g. when restoring persisted state.
func (w *Winners) SetAllTime(allTime map[steamapi.SteamID]int) {
	if allTime == nil {
		allTime = make(map[steamapi.SteamID]int)
	}
	w.AllTime = allTime
}
