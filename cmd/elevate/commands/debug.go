package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/strrl/elevate/internal/config"
	"github.com/strrl/elevate/internal/db"
	"github.com/strrl/elevate/internal/theme"
	"gopkg.in/yaml.v3"
)

// NewDebugCommand creates the debug-config command
func NewDebugCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "debug-config",
		Short: "Print the effective configuration and environment checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebugConfig(cmd, opts)
		},
	}
}

func runDebugConfig(cmd *cobra.Command, opts *rootOptions) error {
	w := cmd.OutOrStdout()

	cfg, found, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	fmt.Fprintf(w, "Config: %s\n", path)
	if !found {
		fmt.Fprintln(w, "(file not found, using defaults)")
	}
	fmt.Fprintln(w, "==========================================")

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Fprint(w, string(out))
	fmt.Fprintln(w)

	mode, err := theme.ParseMode(cfg.Theme, lipgloss.HasDarkBackground)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Theme: %s\n", mode)

	if _, err := db.GetDB(); err != nil {
		fmt.Fprintf(w, "Analytics: unavailable (%v)\n", err)
	} else {
		fmt.Fprintln(w, "Analytics: ok")
	}
	return nil
}
