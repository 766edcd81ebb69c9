// Package cmd wires the CLI: a one-shot search session and a periodic
// watch mode over the same fetch → normalize → rank → persist pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagQuery     string
	flagPages     int
	flagSort      string
	flagMinSalary float64
	flagJSONPath  string
	flagTXTPath   string
	flagSave      bool
	flagStore     bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "vacancies",
	Short: "Job-vacancy aggregator and ranking engine",
	Long: "Aggregates job vacancies from hh.ru and superjob.ru, normalizes them into one\n" +
		"comparable collection (salaries converted to the base currency), ranks by\n" +
		"recency or salary, filters by a minimum-salary threshold and persists the result.",
	RunE: runSearch,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagQuery, "query", "q", "", "job title to search for")
	rootCmd.PersistentFlags().IntVarP(&flagPages, "pages", "p", 0, "pages to fetch per provider (0 = config default)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().StringVar(&flagSort, "sort", "date", "sort order: date | salary | none")
	rootCmd.Flags().Float64Var(&flagMinSalary, "min-salary", 0, "keep only vacancies with normalized salary above this threshold")
	rootCmd.Flags().StringVar(&flagJSONPath, "json", "", "write a JSONL file to this path")
	rootCmd.Flags().StringVar(&flagTXTPath, "txt", "", "write a human-readable TXT file to this path")
	rootCmd.Flags().BoolVar(&flagSave, "save", false, "write JSONL and TXT files to the configured default paths")
	rootCmd.Flags().BoolVar(&flagStore, "store", false, "store vacancies in PostgreSQL")

	_ = rootCmd.MarkPersistentFlagRequired("query")

	rootCmd.AddCommand(watchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	opts := sessionOptions{
		query:     flagQuery,
		pages:     flagPages,
		sortKey:   flagSort,
		jsonPath:  flagJSONPath,
		txtPath:   flagTXTPath,
		save:      flagSave,
		store:     flagStore,
		printList: true,
	}
	if cmd.Flags().Changed("min-salary") {
		opts.minSalary = &flagMinSalary
	}
	return runSession(cmd.Context(), opts)
}
