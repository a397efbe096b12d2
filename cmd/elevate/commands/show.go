package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/strrl/elevate/internal/analytics"
	"github.com/strrl/elevate/internal/catalog"
	"github.com/strrl/elevate/internal/db"
	"github.com/strrl/elevate/internal/knowledge"
	"github.com/strrl/elevate/internal/projects"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show projects, articles or analytics without TUI",
		Long: `Show dashboard data in a non-interactive format.
show projects [--status active|completed|on-hold]: lists the seed projects
show articles [term]: searches the knowledge base
show analytics: prints the monthly financial and customer reports`,
	}

	showCmd.AddCommand(newShowProjectsCommand())
	showCmd.AddCommand(&cobra.Command{
		Use:   "articles [term]",
		Short: "Search knowledge base articles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return showArticles(cmd.OutOrStdout(), term)
		},
	})
	showCmd.AddCommand(&cobra.Command{
		Use:   "analytics",
		Short: "Print the analytics reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showAnalytics(cmd.Context(), cmd.OutOrStdout())
		},
	})
	return showCmd
}

func newShowProjectsCommand() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProjects(cmd.OutOrStdout(), status)
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "Filter: all, active, completed or on-hold")
	return cmd
}

func parseFilter(s string) (projects.Filter, error) {
	for _, f := range projects.Filters {
		if string(f) == strings.ToLower(strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func showProjects(w io.Writer, status string) error {
	filter, err := parseFilter(status)
	if err != nil {
		return err
	}
	cat, err := catalog.Get()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	list := projects.NewBoard(cat.Projects()).List(filter)
	if len(list) == 0 {
		fmt.Fprintln(w, "No projects found")
		return nil
	}

	fmt.Fprintf(w, "Projects (%s):\n", filter.Label())
	fmt.Fprintln(w, "=========")
	for i, p := range list {
		fmt.Fprintf(w, "%d. %s [%s]\n", i+1, p.Name, p.Status)
		fmt.Fprintf(w, "   %s\n", p.Description)
		fmt.Fprintf(w, "   Due: %s\n", p.DueDate)
		fmt.Fprintf(w, "   Team: %s\n", strings.Join(p.Team, ", "))
		fmt.Fprintln(w)
	}
	return nil
}

func showArticles(w io.Writer, term string) error {
	cat, err := catalog.Get()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	found := knowledge.NewBook(cat.Articles()).Search(term)
	if len(found) == 0 {
		fmt.Fprintf(w, "No articles found for '%s'\n", term)
		return nil
	}

	fmt.Fprintln(w, "Articles:")
	fmt.Fprintln(w, "=========")
	for i, a := range found {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, a.Title, a.Category)
	}
	return nil
}

func showAnalytics(ctx context.Context, w io.Writer) error {
	cat, err := catalog.Get()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	conn, err := db.GetDB()
	if err != nil {
		return err
	}
	engine, err := analytics.NewEngine(ctx, conn, cat.Financial(), cat.Customers(), cat.CustomerBase())
	if err != nil {
		return err
	}

	financial, err := engine.Financial(ctx)
	if err != nil {
		return err
	}
	customers, err := engine.Customers(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Financial:")
	fmt.Fprintln(w, "==========")
	fmt.Fprintf(w, "%-5s %10s %10s %10s %9s\n", "Month", "Revenue", "Expenses", "Profit", "Revenue Δ")
	for _, r := range financial.Rows {
		fmt.Fprintf(w, "%-5s %10s %10s %10s %9s\n", r.Month,
			humanize.Comma(r.Revenue), humanize.Comma(r.Expenses), humanize.Comma(r.Profit),
			formatChange(r.RevenueChange))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Customers:")
	fmt.Fprintln(w, "==========")
	fmt.Fprintf(w, "%-5s %5s %8s %7s %7s\n", "Month", "New", "Churned", "Total", "Churn")
	for _, r := range customers.Rows {
		fmt.Fprintf(w, "%-5s %5d %8d %7s %6.1f%%\n", r.Month, r.New, r.Churned, humanize.Comma(r.Total), r.ChurnRate)
	}
	return nil
}

func formatChange(c analytics.Change) string {
	if !c.Valid {
		return "-"
	}
	return fmt.Sprintf("%+.1f%%", c.Percent)
}
