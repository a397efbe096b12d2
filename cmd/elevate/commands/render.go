package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strrl/elevate/internal/logging"
	"github.com/strrl/elevate/internal/nav"
	"github.com/strrl/elevate/internal/tui"
)

// NewRenderCommand creates the render command
func NewRenderCommand(opts *rootOptions) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "render <page>",
		Short: "Print the first frame of a page without TUI",
		Long: `Render one page the way the dashboard would show it right after
opening it, then exit. Unknown pages fall back to chat.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args[0], width, height)
		},
	}
	cmd.Flags().IntVar(&width, "width", 120, "Frame width")
	cmd.Flags().IntVar(&height, "height", 40, "Frame height")
	return cmd
}

func runRender(cmd *cobra.Command, opts *rootOptions, page string, width, height int) error {
	if width < 20 || height < 5 {
		return fmt.Errorf("frame too small: %dx%d", width, height)
	}

	cfg, _, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.File, cfg.Log.Level, opts.debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	env, err := buildEnv(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderPage(env, nav.Parse(page), width, height))
	return nil
}
