package version

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"go.uber.org/zap"
)

const releasesLatestURL = "https://api.github.com/repos/INikonI/steam-giveaway-tool/releases/latest"

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// CheckForUpdates asks GitHub for the latest release and calls notify with
// its tag when it differs from the running version. Best-effort: every
// failure is silent, an update check must never disturb the tool.
func CheckForUpdates(notify func(tag string)) {
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequest(http.MethodGet, releasesLatestURL, nil)
	if err != nil {
		return
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "steam-giveaway-tool")

	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("Update check failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest != "" && latest != Version {
		notify(release.TagName)
	}
}
