// Package main provides the rizzctl command line client.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rizzcalc/rizz-web/internal/backend"
	"github.com/rizzcalc/rizz-web/internal/config"
	"github.com/rizzcalc/rizz-web/internal/intake"
	"github.com/rizzcalc/rizz-web/internal/logic"
	"github.com/rizzcalc/rizz-web/internal/progress"
	"github.com/rizzcalc/rizz-web/internal/results"
	"github.com/rizzcalc/rizz-web/internal/settings"
	"github.com/rizzcalc/rizz-web/internal/share"
)

const defaultOrigin = "http://localhost:8080"

var (
	backendURL  string
	timeout     time.Duration
	verbose     bool
	nickname    string
	shareOrigin string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rizzctl",
		Short:        "Rate the rizz in a chat screenshot",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", envOr("BACKEND_URL", config.DefaultBackendURL), "scoring API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "timeout for each backend call")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log backend calls")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newThemeCmd())

	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <screenshot>",
		Short: "Upload a screenshot and score it",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().StringVarP(&nickname, "nickname", "n", "", "nickname shown on the leaderboard (required)")
	cmd.Flags().StringVar(&shareOrigin, "origin", envOr("PUBLIC_URL", defaultOrigin), "origin used for the share link")
	_ = cmd.MarkFlagRequired("nickname")
	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
}

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share <meme-url>",
		Short: "Print the shareable link for a meme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link := share.Link(shareOrigin, strings.TrimSpace(args[0]))
			if link == "" {
				return fmt.Errorf("meme url is empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().StringVar(&shareOrigin, "origin", envOr("PUBLIC_URL", defaultOrigin), "origin used for the share link")
	return cmd
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|on|off]",
		Short:     "Show or change the vintage theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", "on", "off"},
		RunE:      runThemeCmd,
	}
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	st, err := openSettings()
	if err != nil {
		return err
	}
	styles := newStyles(st.Vintage())

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read screenshot: %w", err)
	}

	client := newClient()
	svc := logic.NewAnalysisService(client, results.NewMemoryStore(time.Hour), nil, intake.NewValidator(intake.MaxScreenshotBytes), newLogger())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Declared type is left empty so the sniffed type decides
	uploaded, err := svc.Upload(ctx, filepath.Base(path), "", data)
	if err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	bar := newProgressBar(styles)
	tracker := progress.NewTracker(300*time.Millisecond, 5, func(p int) {
		fmt.Fprint(out, "\r"+bar.ViewAs(float64(p)/100))
	})
	tracker.Start(ctx)

	stored, err := svc.Analyze(ctx, uploaded.ImageURL, nickname)
	if err != nil {
		tracker.Stop()
		tracker.Wait()
		fmt.Fprintln(out)
		return err
	}
	tracker.Complete()
	tracker.Wait()
	fmt.Fprintln(out)

	fmt.Fprint(cmd.OutOrStdout(), renderResult(styles, stored.Result, share.Link(shareOrigin, stored.Result.MemeURL)))
	return nil
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	st, err := openSettings()
	if err != nil {
		return err
	}

	svc := logic.NewLeaderboardService(newClient(), newLogger())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := svc.GetLeaderboard(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderLeaderboard(newStyles(st.Vintage()), entries))
	return nil
}

func runThemeCmd(cmd *cobra.Command, args []string) error {
	st, err := openSettings()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		switch args[0] {
		case "toggle":
			_, err = st.Toggle()
		case "on":
			err = st.SetVintage(true)
		case "off":
			err = st.SetVintage(false)
		default:
			return fmt.Errorf("unknown theme action %q (use toggle, on or off)", args[0])
		}
		if err != nil {
			return err
		}
	}

	state := "off"
	if st.Vintage() {
		state = "on"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "vintage theme: %s (%s)\n", state, st.Path())
	return nil
}

func openSettings() (*settings.Store, error) {
	st, err := settings.Open(settings.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return st, nil
}

func newClient() *backend.Client {
	return backend.NewClient(backend.Config{
		BaseURL: backendURL,
		Timeout: timeout,
		Logger:  newLogger(),
	})
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
