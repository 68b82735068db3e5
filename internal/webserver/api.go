package webserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/INikonI/steam-giveaway-tool/internal/app"
	"github.com/INikonI/steam-giveaway-tool/internal/filters"
	"github.com/INikonI/steam-giveaway-tool/internal/settings"
	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
	"github.com/INikonI/steam-giveaway-tool/internal/version"
	"go.uber.org/zap"
)

type apiHandlers struct {
	app *app.App
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// handleStatus reports the overall tool state in one response.
func (h *apiHandlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]interface{}{
		"version":        version.String(),
		"latest_version": h.app.LatestVersionTag(),
		"token":          h.app.TokenState(),
		"friends":        h.app.FriendsState(),
		"current_user":   h.app.CurrentUser(),
		"giveaway":       h.app.Giveaway(),
	})
}

type tokenRequest struct {
	Token string `json:"token"`
}

func (h *apiHandlers) handleToken(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, h.app.TokenState())

	case http.MethodPost:
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		state, err := h.app.SetAccessToken(req.Token)
		if err != nil {
			logger.Warn("Rejected access token", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error": err.Error(),
				"state": state,
			})
			return
		}
		writeJSON(w, state)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleFriends returns the full roster, or a name search with ?q=.
func (h *apiHandlers) handleFriends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if term := r.URL.Query().Get("q"); term != "" {
		found := h.app.SearchFriends(term)
		if found == nil {
			found = []steamapi.User{}
		}
		writeJSON(w, found)
		return
	}

	writeJSON(w, h.app.Friends())
}

func (h *apiHandlers) handleFriendsReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.app.ReloadFriends(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, h.app.FriendsState())
}

func (h *apiHandlers) handleFriendsFiltered(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.app.FilteredFriends())
}

func (h *apiHandlers) handleFilters(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, h.app.Filters())

	case http.MethodPut:
		var next filters.Filters
		if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		h.app.UpdateFilters(next)
		writeJSON(w, h.app.Filters())

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *apiHandlers) handleFiltersReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.app.ResetFilters()
	writeJSON(w, h.app.Filters())
}

type hasAppFilterRequest struct {
	Item             steamapi.StoreItem `json:"item"`
	PlaytimeTwoWeeks uint16             `json:"playtime_twoweeks"`
	PlaytimeTotal    uint32             `json:"playtime_total"`
}

func (h *apiHandlers) handleHasAppFilters(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, h.app.Filters().HasStoreItems)

	case http.MethodPost:
		var req hasAppFilterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Item.ID == 0 {
			http.Error(w, "Missing store item", http.StatusBadRequest)
			return
		}

		if err := h.app.AddHasAppFilter(req.Item, req.PlaytimeTwoWeeks, req.PlaytimeTotal); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeJSON(w, h.app.Filters().HasStoreItems)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleHasAppFilterByID removes one ownership filter: DELETE /api/filters/has-app/{id}
func (h *apiHandlers) handleHasAppFilterByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rawID := strings.TrimPrefix(r.URL.Path, "/api/filters/has-app/")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		http.Error(w, "Invalid store item id", http.StatusBadRequest)
		return
	}

	if err := h.app.RemoveHasAppFilter(steamapi.StoreItemID(id)); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, h.app.Filters().HasStoreItems)
}

func (h *apiHandlers) handleStoreSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	term := r.URL.Query().Get("term")
	if term == "" {
		http.Error(w, "Missing search term", http.StatusBadRequest)
		return
	}

	items, err := h.app.SearchStore(term)
	if err != nil {
		logger.Error("Store search failed", zap.String("term", term), zap.Error(err))
		http.Error(w, "Store search failed", http.StatusBadGateway)
		return
	}
	if items == nil {
		items = []steamapi.StoreItem{}
	}
	writeJSON(w, items)
}

func (h *apiHandlers) handleGiveawayItem(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, h.app.GiveawayItem())

	case http.MethodPost:
		var item steamapi.StoreItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if item.ID == 0 {
			http.Error(w, "Missing store item", http.StatusBadRequest)
			return
		}

		h.app.SetGiveawayItem(item)
		writeJSON(w, h.app.GiveawayItem())

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *apiHandlers) handleWinners(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.app.WinnersState())
}

type drawRequest struct {
	Count int `json:"count"`
}

func (h *apiHandlers) handleWinnersDraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req drawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.app.Draw(req.Count)
	if err != nil {
		if errors.Is(err, app.ErrNoFriendsLoaded) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		logger.Error("Draw failed", zap.Error(err))
		http.Error(w, "Draw failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, state)
}

func (h *apiHandlers) handleWinnersSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := h.app.SaveWinners()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, state)
}

type autoSaveRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *apiHandlers) handleWinnersAutoSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req autoSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, h.app.SetAutoSave(req.Enabled))
}

func (h *apiHandlers) handlePreferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, h.app.Preferences())

	case http.MethodPut:
		var prefs settings.Preferences
		if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := h.app.SetPreferences(prefs); err != nil {
			logger.Error("Failed to save preferences", zap.Error(err))
			http.Error(w, "Failed to save preferences", http.StatusInternalServerError)
			return
		}
		writeJSON(w, h.app.Preferences())

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
