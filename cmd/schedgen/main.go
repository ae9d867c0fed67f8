package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bridgesched/internal/config"
	"bridgesched/internal/infrastructure"
	"bridgesched/internal/metrics"
	"bridgesched/internal/services"
)

var (
	inputFile string
	teamName  string
	outputDir string
	year      int
)

var rootCmd = &cobra.Command{
	Use:   "schedgen",
	Short: "Generate weekly bridge inspection schedules from master-sheet TSV",
	Long: `schedgen runs the schedule pipeline without the web UI: it reads
tab-separated text copied from the master spreadsheet, expands booked-access
dates, buckets entries by week and writes one styled workbook per week.`,
	RunE: generate,
}

func init() {
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "TSV file pasted from the master spreadsheet (required)")
	rootCmd.Flags().StringVarP(&teamName, "team", "t", "", "team key, e.g. the leader's surname (required)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "output", "directory to write workbooks to")
	rootCmd.Flags().IntVarP(&year, "year", "y", 0, "implicit year for dates without one (default: current year)")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("team")
}

func generate(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.Parser.ImplicitYear = year
	cfg.Logging.Level = "warn"

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	teams := services.NewTeamService()
	svc, err := services.NewScheduleService(&cfg, teams, metrics.NewCollector(), logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	preview := svc.Preview(ctx, string(raw))
	for _, issue := range preview.Issues {
		fmt.Fprintf(os.Stderr, "row %d: %s: %s\n", issue.Row, issue.Field, issue.Message)
	}
	if preview.Count == 0 {
		return fmt.Errorf("no valid entries in %s", inputFile)
	}

	result, err := svc.Generate(ctx, services.GenerateRequest{
		TeamName:     teamName,
		Entries:      preview.Entries,
		OutputDir:    outputDir,
		SaveToSystem: true,
	})
	if err != nil {
		return err
	}

	for _, path := range result.SavedPaths {
		fmt.Println(path)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintln(os.Stderr, warning)
	}
	fmt.Printf("%d entries across %d week(s)\n", preview.Count, result.Documents)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
