package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studia/internal/bootstrap"
	analyticsdto "studia/internal/modules/analytics/dto"
	"studia/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rootPath string

	root := &cobra.Command{
		Use:           "studia",
		Short:         "Study session tracker and analytics workbench",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&rootPath, "root", ".", "data directory root")

	root.AddCommand(newTUICmd(&rootPath))
	root.AddCommand(newSessionCmd(&rootPath))
	root.AddCommand(newImportCmd(&rootPath))
	root.AddCommand(newAnalyzeCmd(&rootPath))
	root.AddCommand(newKindsCmd(&rootPath))
	return root
}

func loadApp(rootPath string) (*bootstrap.App, error) {
	cfg, err := config.Load(rootPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func parseDay(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	return day, nil
}

func newTUICmd(rootPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the studia terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newSessionCmd(rootPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Record and list study sessions"}

	var date, tag string
	var minutes int
	add := &cobra.Command{
		Use:   "add --minutes <n>",
		Short: "Record a study session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			day := time.Now().UTC()
			if strings.TrimSpace(date) != "" {
				if day, err = parseDay(date); err != nil {
					return err
				}
			}
			out, err := app.SessionCLI.Add(context.Background(), day, minutes, tag)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s: %d min on %s\n", out.ID, out.DurationMin, out.Date.Format("2006-01-02"))
			return nil
		},
	}
	add.Flags().IntVar(&minutes, "minutes", 0, "session duration in minutes")
	add.Flags().StringVar(&date, "date", "", "session date YYYY-MM-DD (default today)")
	add.Flags().StringVar(&tag, "tag", "", "subject tag (optional)")
	_ = add.MarkFlagRequired("minutes")

	var from, to, listTag string
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			var fromDay, toDay time.Time
			if strings.TrimSpace(from) != "" {
				if fromDay, err = parseDay(from); err != nil {
					return err
				}
			}
			if strings.TrimSpace(to) != "" {
				if toDay, err = parseDay(to); err != nil {
					return err
				}
			}
			records, err := app.SessionCLI.List(context.Background(), fromDay, toDay, listTag)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d min\t%s\n", r.Date.Format("2006-01-02"), r.ID, r.DurationMin, r.Tag)
			}
			return nil
		},
	}
	list.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD")
	list.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (default today)")
	list.Flags().StringVar(&listTag, "tag", "", "filter by subject tag")

	session.AddCommand(add, list)
	return session
}

func newImportCmd(rootPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Import sessions from a date,minutes[,tag] CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.ImportCSV(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sessions, skipped %d rows\n", out.Imported, out.Skipped)
			return nil
		},
	}
}

func newKindsCmd(rootPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List supported analysis kinds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			for _, k := range app.AnalyticsCLI.Kinds() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func newAnalyzeCmd(rootPath *string) *cobra.Command {
	var asOf, tag string
	var maxLag, window int
	var threshold float64
	var quantiles []float64

	analyze := &cobra.Command{
		Use:   "analyze <kind>",
		Short: "Run one analysis over the recorded sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*rootPath)
			if err != nil {
				return err
			}
			input := analyticsdto.AnalyzeInput{
				Kind:      args[0],
				Tag:       tag,
				MaxLag:    maxLag,
				Window:    window,
				Threshold: threshold,
				Quantiles: quantiles,
			}
			if strings.TrimSpace(asOf) != "" {
				if input.AsOf, err = parseDay(asOf); err != nil {
					return err
				}
			}
			result, err := app.AnalyticsCLI.Analyze(context.Background(), input)
			if err != nil {
				return err
			}
			printResult(cmd, result)
			return nil
		},
	}
	analyze.Flags().StringVar(&asOf, "as-of", "", "analyze data up to this date YYYY-MM-DD (default today)")
	analyze.Flags().StringVar(&tag, "tag", "", "restrict to one subject tag")
	analyze.Flags().IntVar(&maxLag, "max-lag", 0, "maximum lag in days")
	analyze.Flags().IntVar(&window, "window", 0, "event window in days")
	analyze.Flags().Float64Var(&threshold, "threshold", 0, "event threshold in minutes")
	analyze.Flags().Float64SliceVar(&quantiles, "quantiles", nil, "quantile levels in (0,1)")
	return analyze
}

func printResult(cmd *cobra.Command, result analyticsdto.ResultOutput) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\t%s\n", result.Kind, result.Status)
	if result.Reason != "" {
		_, _ = fmt.Fprintf(out, "reason: %s\n", result.Reason)
	}
	_, _ = fmt.Fprintln(out, result.Explanation)
	_, _ = fmt.Fprintf(out, "confidence: %.2f (%s)\n", result.Confidence, result.ConfidenceLabel)
	for _, w := range result.Warnings {
		_, _ = fmt.Fprintf(out, "warning: %s\n", w)
	}
	for _, p := range result.Points {
		if math.IsNaN(p.Value) {
			_, _ = fmt.Fprintf(out, "%s\tn/a\n", p.Label)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s\t%.3f\n", p.Label, p.Value)
	}
	for _, s := range result.Series {
		_, _ = fmt.Fprintf(out, "series %s: %d points\n", s.Name, len(s.Y))
	}
}
