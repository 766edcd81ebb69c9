package cmd

import (
	"context"
	"fmt"

	"github.com/VeraSamohina/skypro-course-work-OOP/config"
	"github.com/VeraSamohina/skypro-course-work-OOP/currency"
	"github.com/VeraSamohina/skypro-course-work-OOP/models"
	"github.com/VeraSamohina/skypro-course-work-OOP/provider"
	"github.com/VeraSamohina/skypro-course-work-OOP/services"
	"github.com/VeraSamohina/skypro-course-work-OOP/storage"
	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

// sessionOptions parametrizes one fetch → normalize → rank → persist run.
type sessionOptions struct {
	query     string
	pages     int
	sortKey   string // "date", "salary" or "none"
	minSalary *float64
	jsonPath  string // explicit JSONL output path; empty = not requested
	txtPath   string // explicit TXT output path; empty = not requested
	save      bool   // write both files to the configured default paths
	store     bool
	printList bool
}

// vacancyStore is the accumulating store behind --store and watch mode.
type vacancyStore interface {
	Write([]*models.Vacancy) error
	FetchAll() ([]*models.Vacancy, error)
}

// runSession executes one full aggregation session.
func runSession(ctx context.Context, opts sessionOptions) error {
	logger := utils.NewLogger()
	logger.SetVerbose(flagVerbose)
	cfg := config.Load()

	pages := opts.pages
	if pages <= 0 {
		pages = cfg.PagesToFetch
	}

	logger.Info("=== Vacancy aggregation starting — query: %q, pages/provider: %d ===", opts.query, pages)

	gateway, closeGateway := buildGateway(ctx, cfg, logger)
	defer closeGateway()

	providers := []provider.Provider{
		provider.NewHeadHunter(logger, cfg.MaxRetries),
		provider.NewSuperJob(cfg.SuperJobAPIKey, logger, cfg.MaxRetries),
	}

	pool := utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs)
	raws := provider.FetchAll(ctx, providers, opts.query, pages, pool, logger)
	if len(raws) == 0 {
		// Not an error: downstream operations handle the empty set.
		logger.Warn("No vacancies fetched for %q", opts.query)
	}
	logger.Info("Fetched %d raw records", len(raws))

	normalizer := services.NewNormalizer(gateway, cfg.BaseCurrencyCode, cfg.BaseCurrencyLabel, logger)
	vacs := normalizer.NormalizeAll(ctx, raws)

	switch opts.sortKey {
	case "date":
		if err := services.SortByDateDesc(vacs); err != nil {
			return fmt.Errorf("sort by date: %w", err)
		}
	case "salary":
		services.SortBySalaryDesc(vacs)
	case "none", "":
	default:
		return fmt.Errorf("unknown sort key %q (want date, salary or none)", opts.sortKey)
	}

	if opts.minSalary != nil {
		filtered, err := services.FilterByMinSalary(vacs, *opts.minSalary)
		if err != nil {
			return err
		}
		logger.Info("Filter > %.0f kept %d of %d vacancies", *opts.minSalary, len(filtered), len(vacs))
		vacs = filtered
	}

	if opts.printList {
		fmt.Print(services.Render(vacs))
	}

	if jsonPath, txtPath := outputPaths(cfg, opts); jsonPath != "" || txtPath != "" {
		if err := saveFiles(jsonPath, txtPath, vacs, logger); err != nil {
			return err
		}
	}

	reportSet := vacs
	if opts.store {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			return fmt.Errorf("connect to PostgreSQL: %w", err)
		}
		defer pgWriter.Close()

		reportSet, err = storeAndReload(pgWriter, vacs, logger)
		if err != nil {
			return err
		}
	}

	reportSvc := services.NewReportService(logger)
	reportSvc.Print(reportSvc.Generate(reportSet))

	return nil
}

// buildGateway assembles the rate gateway: CBR client behind a memoizing
// resolver, backed by Redis when configured and by process memory otherwise.
func buildGateway(ctx context.Context, cfg *config.Config, logger *utils.Logger) (currency.Gateway, func()) {
	cbr := currency.NewCBRClient(logger, cfg.MaxRetries)

	if cfg.RedisURL != "" {
		store, err := currency.NewRedisStore(ctx, cfg.RedisURL, logger)
		if err == nil {
			logger.Info("[currency] Using Redis rate cache at %s", cfg.RedisURL)
			return currency.NewResolver(cbr, store, logger), func() { _ = store.Close() }
		}
		logger.Warn("[currency] Redis cache unavailable (%v) — falling back to in-memory", err)
	}

	return currency.NewResolver(cbr, currency.NewMemoryStore(), logger), func() {}
}

// outputPaths decides where file output goes: explicit --json/--txt paths
// win, and --save fills in the config defaults for whichever is unset.
func outputPaths(cfg *config.Config, opts sessionOptions) (jsonPath, txtPath string) {
	jsonPath, txtPath = opts.jsonPath, opts.txtPath
	if opts.save {
		if jsonPath == "" {
			jsonPath = cfg.JSONOutputPath
		}
		if txtPath == "" {
			txtPath = cfg.TXTOutputPath
		}
	}
	return jsonPath, txtPath
}

func saveFiles(jsonPath, txtPath string, vacs []*models.Vacancy, logger *utils.Logger) error {
	if jsonPath != "" {
		jsonWriter, err := storage.NewJSONLWriter(jsonPath)
		if err != nil {
			return err
		}
		defer jsonWriter.Close()

		if err := jsonWriter.Write(vacs); err != nil {
			return err
		}
		logger.Info("Saved %d vacancies to %s", len(vacs), jsonPath)
	}

	if txtPath != "" {
		txtWriter, err := storage.NewTXTWriter(txtPath)
		if err != nil {
			return err
		}
		defer txtWriter.Close()

		if err := txtWriter.Write(vacs); err != nil {
			return err
		}
		logger.Info("Saved %d vacancies to %s", len(vacs), txtPath)
	}

	return nil
}

// storeAndReload persists the session's vacancies and returns the full
// accumulated set, so the summary covers every stored row and not just
// this cycle's. Falls back to the session set when the reload fails.
func storeAndReload(store vacancyStore, vacs []*models.Vacancy, logger *utils.Logger) ([]*models.Vacancy, error) {
	if err := store.Write(vacs); err != nil {
		return nil, fmt.Errorf("store vacancies: %w", err)
	}
	logger.Info("Stored %d vacancies in PostgreSQL (table: vacancies)", len(vacs))

	stored, err := store.FetchAll()
	if err != nil {
		logger.Warn("Could not reload stored vacancies (%v) — summary covers this session only", err)
		return vacs, nil
	}
	logger.Info("Summary covers %d accumulated vacancies", len(stored))
	return stored, nil
}
