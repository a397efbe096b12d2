package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/strrl/elevate/internal/analytics"
	"github.com/strrl/elevate/internal/catalog"
	"github.com/strrl/elevate/internal/chat"
	"github.com/strrl/elevate/internal/config"
	"github.com/strrl/elevate/internal/db"
	"github.com/strrl/elevate/internal/logging"
	"github.com/strrl/elevate/internal/nav"
	"github.com/strrl/elevate/internal/theme"
	"github.com/strrl/elevate/internal/tui"
	"go.uber.org/zap"
)

// rootOptions are the persistent flags. Each one overrides the matching
// config file key when set.
type rootOptions struct {
	configPath string
	theme      string
	page       string
	replyDelay time.Duration
	lateReply  string
	logFile    string
	debug      bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "elevate",
		Short: "ElevateAI business dashboard in your terminal",
		Long: `elevate is a TUI dashboard with an AI consultant chat, analytics,
projects, a knowledge base and settings.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/elevate/config.yaml)")
	flags.StringVar(&opts.theme, "theme", "", "Theme: auto, light or dark")
	flags.StringVar(&opts.page, "page", "", "Page to open first")
	flags.DurationVar(&opts.replyDelay, "reply-delay", 0, "Delay before the assistant replies")
	flags.StringVar(&opts.lateReply, "late-reply", "", "Replies due after leaving the chat: drop or deliver")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flags.BoolVar(&opts.debug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewRenderCommand(opts))
	rootCmd.AddCommand(NewDebugCommand(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags that were set
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, bool, error) {
	cfg, found, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, found, err
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = opts.theme
	}
	if flags.Changed("page") {
		cfg.StartPage = opts.page
	}
	if flags.Changed("reply-delay") {
		cfg.Chat.ReplyDelay = opts.replyDelay
	}
	if flags.Changed("late-reply") {
		cfg.Chat.LateReply = opts.lateReply
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, found, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, found, nil
}

// buildEnv wires the collaborators every page receives
func buildEnv(ctx context.Context, cfg config.Config, logger *zap.Logger) (*tui.Env, error) {
	mode, err := theme.ParseMode(cfg.Theme, lipgloss.HasDarkBackground)
	if err != nil {
		return nil, err
	}
	policy, err := chat.ParseLatePolicy(cfg.Chat.LateReply)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return &tui.Env{
		Theme:     theme.NewStore(mode),
		Logger:    logger,
		Catalog:   cat,
		Analytics: newAnalyticsEngine(ctx, cat, logger),
		Mailbox:   &chat.Mailbox{},
		Chat: tui.ChatOptions{
			ReplyDelay: cfg.Chat.ReplyDelay,
			ReplyText:  cfg.Chat.ReplyText,
			LatePolicy: policy,
		},
	}, nil
}

// newAnalyticsEngine returns nil when DuckDB is unavailable; the analytics
// page then shows the error instead of the reports
func newAnalyticsEngine(ctx context.Context, cat *catalog.Catalog, logger *zap.Logger) *analytics.Engine {
	conn, err := db.GetDB()
	if err != nil {
		logger.Warn("Analytics disabled", zap.Error(err))
		return nil
	}
	engine, err := analytics.NewEngine(ctx, conn, cat.Financial(), cat.Customers(), cat.CustomerBase())
	if err != nil {
		logger.Warn("Analytics disabled", zap.Error(err))
		return nil
	}
	return engine
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, found, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.File, cfg.Log.Level, opts.debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting dashboard",
		zap.Bool("config_found", found),
		zap.String("theme", cfg.Theme),
		zap.String("start_page", cfg.StartPage),
		zap.String("late_reply", cfg.Chat.LateReply))

	env, err := buildEnv(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	if err := tui.ShowTUI(env, tui.Options{
		Start:            nav.Parse(cfg.StartPage),
		SidebarCollapsed: cfg.Sidebar.Collapsed,
	}); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
