// Command smashcast is a small demo CLI over the Smashcast API client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jens1o/smashcast/auth"
	"github.com/jens1o/smashcast/channel"
	"github.com/jens1o/smashcast/client"
	"github.com/jens1o/smashcast/internal/platform/config"
	"github.com/jens1o/smashcast/internal/platform/logging"
	"github.com/jens1o/smashcast/internal/platform/version"
	"github.com/jens1o/smashcast/user"
)

func main() {
	var (
		channelName = flag.String("channel", "", "channel to inspect (views, live state)")
		listEditors = flag.Bool("editors", false, "also list the channel's editors (requires credentials)")
		userName    = flag.String("user", "", "user profile to look up")
		logoPath    = flag.String("download-logo", "", "write the looked-up user's logo to this file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	httpc := &http.Client{Timeout: cfg.HTTPTimeout}
	c := client.New(
		client.WithBaseURL(cfg.APIBaseURL),
		client.WithMediaBaseURL(cfg.MediaBaseURL),
		client.WithHTTPClient(httpc),
		client.WithAuthProvider(buildAuthProvider(cfg, httpc)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *channelName != "" {
		inspectChannel(ctx, c, *channelName, *listEditors)
	}
	if *userName != "" {
		inspectUser(ctx, c, *userName, *logoPath)
	}
	if *channelName == "" && *userName == "" {
		flag.Usage()
		os.Exit(2)
	}
}

func buildAuthProvider(cfg *config.Config, httpc *http.Client) auth.Provider {
	if cfg.AuthToken != "" {
		return auth.NewStatic(cfg.AuthToken)
	}
	if cfg.Login != "" {
		return auth.NewLoginProvider(cfg.APIBaseURL, cfg.Login, cfg.Password,
			auth.WithApp(cfg.AppName), auth.WithHTTPClient(httpc))
	}
	return nil
}

func inspectChannel(ctx context.Context, c *client.Client, name string, listEditors bool) {
	ch := channel.New(c, name)
	fmt.Printf("channel: %s\n", ch)

	if views, ok := ch.TotalViews(ctx, false); ok {
		fmt.Printf("total live views: %d\n", views)
	} else {
		fmt.Println("total live views: unavailable")
	}

	if info, ok := ch.LiveMedia().Info(ctx); ok {
		fmt.Printf("live: %v (%s)\n", info.Live(), info.Title)
	}
	if created, ok := ch.TimeCreated(ctx); ok {
		fmt.Printf("media created: %s\n", created.Format(time.RFC3339))
	}

	if listEditors {
		editors, ok := ch.Editors(ctx, false)
		if !ok {
			fmt.Println("editors: unavailable")
			return
		}
		fmt.Printf("editors (%d):\n", len(editors))
		for _, e := range editors {
			fmt.Printf("  %s\n", e.UserName)
		}
	}
}

func inspectUser(ctx context.Context, c *client.Client, name, logoPath string) {
	profile, ok := user.NewService(c, c, c.MediaBaseURL()).Get(ctx, name)
	if !ok {
		fmt.Printf("user %s: not found\n", name)
		return
	}

	fmt.Printf("user: %s (id %s, live %v)\n", profile.UserName, profile.UserID, profile.Live())

	logo := profile.Logo()
	if logo == nil {
		fmt.Println("logo: none")
		return
	}
	fmt.Printf("logo: %s\n", logo)

	if logoPath != "" {
		if logo.DownloadTo(ctx, logoPath) {
			fmt.Printf("logo written to %s\n", logoPath)
		} else {
			fmt.Println("logo download failed")
		}
	}
}
