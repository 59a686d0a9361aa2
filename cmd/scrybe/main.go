// Command scrybe is the terminal client for a video transcript archive.
package main

import (
	"fmt"
	"os"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driven/api"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driven/config/file"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driven/storage/sqlite"
	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driving/cli"
	"github.com/scrybe-labs/scrybe-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cli.SetConfigStore(configStore)

	baseURL := configStore.GetString("api.base_url")
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}

	var opts []api.Option
	if key := configStore.GetString("api.key"); key != "" {
		opts = append(opts, api.WithAPIKey(key))
	}
	if rps := configStore.GetFloat("api.rate_limit"); rps > 0 {
		opts = append(opts, api.WithRateLimit(rps))
	}
	cli.SetArchiveClient(api.NewClient(baseURL, opts...))

	// History is optional: a broken local database degrades the client to
	// historyless operation instead of blocking search.
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("search history unavailable: %v", err)
	} else {
		defer store.Close()
		cli.SetHistoryStore(store.HistoryStore())
	}

	return cli.Execute(version)
}
