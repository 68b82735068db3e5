package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/INikonI/steam-giveaway-tool/internal/app"
	"github.com/INikonI/steam-giveaway-tool/internal/filters"
	"github.com/INikonI/steam-giveaway-tool/internal/localdb"
	"github.com/INikonI/steam-giveaway-tool/internal/settings"
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

func newTestAPI(t *testing.T) *apiHandlers {
	t.Helper()

	localdb.DBClient = nil
	if _, err := localdb.SetupDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("failed to setup database: %v", err)
	}
	t.Cleanup(func() {
		localdb.DBClient.Close()
		localdb.DBClient = nil
	})

	steam := steamapi.NewClient()
	return &apiHandlers{app: app.New(steam, "")}
}

func TestHandleStatus(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	api.handleStatus(rec, req)

	if got, want := rec.Code, http.StatusOK; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}

	var body struct {
		Token struct {
			State string `json:"state"`
		} `json:"token"`
		Friends struct {
			Total int `json:"total"`
		} `json:"friends"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got, want := body.Token.State, "empty"; got != want {
		t.Fatalf("unexpected token state: got=%q want=%q", got, want)
	}
	if got, want := body.Friends.Total, 0; got != want {
		t.Fatalf("unexpected friend total: got=%d want=%d", got, want)
	}
}

func TestHandleTokenRejectsMalformed(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(`{"token":"garbage"}`))
	rec := httptest.NewRecorder()
	api.handleToken(rec, req)

	if got, want := rec.Code, http.StatusUnprocessableEntity; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}
}

func TestHandleTokenMethodNotAllowed(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/token", nil)
	rec := httptest.NewRecorder()
	api.handleToken(rec, req)

	if got, want := rec.Code, http.StatusMethodNotAllowed; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}
}

func TestHandleFiltersRoundTrip(t *testing.T) {
	api := newTestAPI(t)

	body := `{"account_age":3,"exclude_unknown_age":true,"regions_and_countries":{"cis":"exclude"}}`
	req := httptest.NewRequest(http.MethodPut, "/api/filters", strings.NewReader(body))
	rec := httptest.NewRecorder()
	api.handleFilters(rec, req)

	if got, want := rec.Code, http.StatusOK; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}

	var got filters.Filters
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.AccountAge != 3 || !got.ExcludeUnknownAge {
		t.Fatalf("unexpected filters: %+v", got)
	}
	if got.RegionsAndCountries.CIS != filters.RegionExclude {
		t.Fatalf("unexpected region state: %v", got.RegionsAndCountries.CIS)
	}
}

func TestHandleFiltersResetRequiresPost(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/filters/reset", nil)
	rec := httptest.NewRecorder()
	api.handleFiltersReset(rec, req)

	if got, want := rec.Code, http.StatusMethodNotAllowed; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}
}

func TestHandleWinnersDrawWithoutRoster(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/winners/draw", strings.NewReader(`{"count":1}`))
	rec := httptest.NewRecorder()
	api.handleWinnersDraw(rec, req)

	if got, want := rec.Code, http.StatusConflict; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}
}

func TestHandleWinnersAutoSave(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPut, "/api/winners/auto-save", strings.NewReader(`{"enabled":true}`))
	rec := httptest.NewRecorder()
	api.handleWinnersAutoSave(rec, req)

	if got, want := rec.Code, http.StatusOK; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}

	var state app.WinnersState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !state.AutoSaveCurrent {
		t.Fatal("expected auto-save to be enabled")
	}
}

func TestHandlePreferencesRoundTrip(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/preferences", nil)
	rec := httptest.NewRecorder()
	api.handlePreferences(rec, req)

	var prefs settings.Preferences
	if err := json.NewDecoder(rec.Body).Decode(&prefs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !prefs.Avatars || !prefs.FlagsIcons || !prefs.StoreItemsCapsules {
		t.Fatalf("unexpected default preferences: %+v", prefs)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/preferences", strings.NewReader(`{"avatars":false,"flags_icons":true,"store_items_capsules":true}`))
	rec = httptest.NewRecorder()
	api.handlePreferences(rec, req)

	if got, want := rec.Code, http.StatusOK; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}
	if err := json.NewDecoder(rec.Body).Decode(&prefs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if prefs.Avatars {
		t.Fatal("expected avatars to be disabled")
	}
}

func TestHandleHasAppFilterByIDInvalid(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/filters/has-app/abc", nil)
	rec := httptest.NewRecorder()
	api.handleHasAppFilterByID(rec, req)

	if got, want := rec.Code, http.StatusBadRequest; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/filters/has-app/440", nil)
	rec = httptest.NewRecorder()
	api.handleHasAppFilterByID(rec, req)

	if got, want := rec.Code, http.StatusNotFound; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}
}

func TestHandleStoreSearchMissingTerm(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/store/search", nil)
	rec := httptest.NewRecorder()
	api.handleStoreSearch(rec, req)

	if got, want := rec.Code, http.StatusBadRequest; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}
}

func TestCorsMiddlewareOptions(t *testing.T) {
	handler := corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for OPTIONS")
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/status", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got, want := rec.Code, http.StatusOK; got != want {
		t.Fatalf("unexpected status: got=%d want=%d", got, want)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected CORS origin header: %q", got)
	}
}
