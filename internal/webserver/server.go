package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/INikonI/steam-giveaway-tool/internal/app"
	"github.com/INikonI/steam-giveaway-tool/internal/broadcast"
	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"go.uber.org/zap"
)

var httpServer *http.Server

// webSocketBroadcaster bridges core event sends onto the WebSocket hub.
type webSocketBroadcaster struct{}

// BroadcastMessage implements the broadcast.Broadcaster interface.
func (w *webSocketBroadcaster) BroadcastMessage(message interface{}) {
	msgMap, ok := message.(map[string]interface{})
	if !ok {
		return
	}
	msgType, ok := msgMap["type"].(string)
	if !ok {
		return
	}

	if data, hasData := msgMap["data"]; hasData {
		BroadcastWSMessage(msgType, data)
		return
	}

	cleanData := make(map[string]interface{})
	for k, v := range msgMap {
		if k != "type" {
			cleanData[k] = v
		}
	}
	BroadcastWSMessage(msgType, cleanData)
}

// corsMiddleware adds CORS headers to HTTP handlers
func corsMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler(w, r)
	}
}

// StartWebServer starts the HTTP/WebSocket surface over the app core.
func StartWebServer(port int, a *app.App) error {
	broadcast.SetBroadcaster(&webSocketBroadcaster{})

	mux := http.NewServeMux()

	api := &apiHandlers{app: a}

	mux.HandleFunc("/api/status", corsMiddleware(api.handleStatus))
	mux.HandleFunc("/api/token", corsMiddleware(api.handleToken))

	mux.HandleFunc("/api/friends", corsMiddleware(api.handleFriends))
	mux.HandleFunc("/api/friends/reload", corsMiddleware(api.handleFriendsReload))
	mux.HandleFunc("/api/friends/filtered", corsMiddleware(api.handleFriendsFiltered))

	mux.HandleFunc("/api/filters", corsMiddleware(api.handleFilters))
	mux.HandleFunc("/api/filters/reset", corsMiddleware(api.handleFiltersReset))
	mux.HandleFunc("/api/filters/has-app", corsMiddleware(api.handleHasAppFilters))
	mux.HandleFunc("/api/filters/has-app/", corsMiddleware(api.handleHasAppFilterByID))

	mux.HandleFunc("/api/store/search", corsMiddleware(api.handleStoreSearch))
	mux.HandleFunc("/api/giveaway/item", corsMiddleware(api.handleGiveawayItem))

	mux.HandleFunc("/api/winners", corsMiddleware(api.handleWinners))
	mux.HandleFunc("/api/winners/draw", corsMiddleware(api.handleWinnersDraw))
	mux.HandleFunc("/api/winners/save", corsMiddleware(api.handleWinnersSave))
	mux.HandleFunc("/api/winners/auto-save", corsMiddleware(api.handleWinnersAutoSave))

	mux.HandleFunc("/api/preferences", corsMiddleware(api.handlePreferences))

	RegisterWebSocketRoute(mux)

	addr := fmt.Sprintf(":%d", port)
	logger.Info("Starting web server", zap.String("address", addr))

	httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start in a goroutine but wait briefly to catch immediate binding errors.
	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("Failed to start web server", zap.Error(err))
			return fmt.Errorf("failed to start web server on port %d: %w", port, err)
		}
	case <-time.After(100 * time.Millisecond):
	}

	return nil
}

// Shutdown gracefully shuts down the web server
func Shutdown() {
	if httpServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown web server gracefully", zap.Error(err))
	} else {
		logger.Info("Web server shutdown complete")
	}
}
