package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-diversity/internal/config"
	"github.com/naka-gawa/github-diversity/internal/gateway"
	applog "github.com/naka-gawa/github-diversity/internal/log"
	"github.com/naka-gawa/github-diversity/internal/report"
	"github.com/naka-gawa/github-diversity/internal/usecase"
	"github.com/naka-gawa/github-diversity/internal/view"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [owner/repo]",
		Short: "Analyzes the contributor diversity of a repository",
		Long: `Analyze sends one request to the analysis service and prints the category
breakdown of the analyzed commits together with the diversity index comparison.

When no repository is given, it is taken from --url, or from the GitHub remote
of the git checkout in the current directory. Interrupting the command cancels
the request in flight; nothing is printed afterwards.

Examples:
  # Analyze the last 500 commits
  github-diversity analyze octo/cat --count 500

  # Use the repository of the current checkout, output Markdown
  github-diversity analyze --output markdown

  # Pre-fill from a browser URL and canonicalize it through the GitHub API
  GITHUB_TOKEN=... github-diversity analyze --url https://github.com/octo/cat/pulls --resolve`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	defaults := config.NewConfig()
	cmd.Flags().StringP("count", "n", defaults.CommitCount, "Number of commits to analyze (1-10000)")
	cmd.Flags().StringP("url", "u", "", "GitHub URL to take the repository from")
	cmd.Flags().String("remote", defaults.Remote, "Git remote used when neither a repository nor --url is given")
	cmd.Flags().String("endpoint", defaults.Endpoint, "Base URL of the analysis service")
	cmd.Flags().Duration("timeout", defaults.Timeout, "Timeout of the analysis request")
	cmd.Flags().StringP("output", "o", defaults.Output, "Output format: text, markdown or json")
	cmd.Flags().Bool("resolve", defaults.Resolve, "Canonicalize the pre-filled repository through the GitHub API")
	cmd.Flags().StringP("config", "c", "", "Path to a configuration file")

	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := applog.New(cmd.ErrOrStderr(), verbose)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Verbose = verbose
	logger.Debug("configuration loaded", "endpoint", cfg.Endpoint, "timeout", cfg.Timeout, "output", cfg.Output)

	writer, err := report.NewWriter(cfg.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	doc := view.NewDocument(view.WithAlertHandler(func(msg string) {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	}))
	analyzer := gateway.NewAnalysisGateway(cfg.Endpoint, cfg.Timeout, logger)
	popup := usecase.NewPopup(context.Background(), analyzer, doc, logger)
	defer popup.Close()

	repo := ""
	if len(args) == 1 {
		repo = args[0]
	} else {
		tabs, resolver, err := prefillSources(cmd, cfg, logger)
		if err != nil {
			return err
		}
		repo, _ = popup.Prefill(tabs, resolver)
	}

	// Interrupting the process ends the popup lifetime.
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	settled := make(chan struct{})
	var eg errgroup.Group
	eg.Go(func() error {
		defer close(settled)
		return popup.Trigger(repo, cfg.CommitCount)
	})
	eg.Go(func() error {
		select {
		case <-sigCtx.Done():
			popup.Close()
		case <-settled:
		}
		return nil
	})
	runErr := eg.Wait()

	if sigCtx.Err() != nil {
		logger.Debug("interrupted, discarding output")
		return nil
	}
	popup.Close()

	if _, err := writer.Write(doc.Snapshot()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if runErr != nil {
		return &reportedError{err: runErr}
	}
	return nil
}

// loadConfig merges defaults, the config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	cfg.ConfigFilePath, _ = cmd.Flags().GetString("config")
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if err := cfg.Apply(file); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.CommitCount, _ = flags.GetString("count")
	}
	if flags.Changed("remote") {
		cfg.Remote, _ = flags.GetString("remote")
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("resolve") {
		cfg.Resolve, _ = flags.GetBool("resolve")
	}
	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// prefillSources picks the current-tab provider and the optional resolver.
func prefillSources(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (gateway.TabQuerier, gateway.Resolver, error) {
	var tabs gateway.TabQuerier = gateway.GitRemoteTab{Remote: cfg.Remote}
	if url, _ := cmd.Flags().GetString("url"); url != "" {
		tabs = gateway.StaticTab(url)
	}

	if !cfg.Resolve {
		return tabs, nil, nil
	}
	resolver, err := gateway.NewGitHubGateway(cfg.GitHubToken, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return tabs, resolver, nil
}
