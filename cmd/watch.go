package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/VeraSamohina/skypro-course-work-OOP/config"
	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the search periodically and store results in PostgreSQL",
	Long: "Runs the aggregation session on a fixed interval (WATCH_INTERVAL_HOURS),\n" +
		"storing every cycle's vacancies in PostgreSQL. The first cycle fires\n" +
		"immediately. Stop with Ctrl+C.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	logger := utils.NewLogger()
	logger.SetVerbose(flagVerbose)
	cfg := config.Load()

	opts := sessionOptions{
		query:   flagQuery,
		pages:   flagPages,
		sortKey: "date",
		store:   true,
	}

	cycle := func() {
		if err := runSession(cmd.Context(), opts); err != nil {
			logger.Error("[watch] Cycle failed: %v", err)
		}
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %dh", cfg.WatchIntervalHours)
	if _, err := c.AddFunc(spec, cycle); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	c.Start()
	logger.Info("[watch] Scheduler started — spec: %s", spec)

	// Populate the table without waiting for the first tick.
	go cycle()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-c.Stop().Done()
	logger.Info("[watch] Scheduler stopped")
	return nil
}
