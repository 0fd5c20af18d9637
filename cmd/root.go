package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"searchprep/auth"
	"searchprep/indexing"
	"searchprep/ingestion"
)

// Config carries the full CLI surface. It is built once from flags and
// environment fallbacks and passed into every component explicitly.
type Config struct {
	File           string
	Category       string
	SkipBlobs      bool
	StorageAccount string
	Container      string
	StorageKey     string
	SearchService  string
	Index          string
	SearchKey      string
	Remove         bool
	RemoveAll      bool
	Verbose        bool
}

// Endpoint resolves the search service flag to a server URL. A bare name
// targets the hosted cluster under that name; a value carrying a scheme is
// used verbatim so self-hosted servers work too.
func (c Config) Endpoint() string {
	if strings.Contains(c.SearchService, "://") {
		return strings.TrimSuffix(c.SearchService, "/")
	}
	return fmt.Sprintf("https://%s.a1.typesense.net", c.SearchService)
}

var cfg Config

var rootCmd = &cobra.Command{
	Use:   "searchprep <file>",
	Short: "Index CSV rows into a hosted search index",
	Long: `Prepare documents by extracting content from a CSV file and indexing
them in a hosted full-text search index.

The CSV must be UTF-8 (an optional byte-order mark is fine) and contain at
least the columns "id", "name" and "description".`,
	Example:       `  searchprep data.csv --searchservice mysearch --index myindex -v`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfg.Category, "category", "", "Value for the category field for all sections indexed in this run")
	flags.BoolVar(&cfg.SkipBlobs, "skipblobs", false, "Skip uploading individual pages to blob storage")
	flags.StringVar(&cfg.StorageAccount, "storageaccount", "", "Blob storage account name")
	flags.StringVar(&cfg.Container, "container", "", "Blob storage container name")
	flags.StringVar(&cfg.StorageKey, "storagekey", "", "Optional. Blob storage account key")
	flags.StringVar(&cfg.SearchService, "searchservice", "", "Name of the search service where content should be indexed, or a full endpoint URL")
	flags.StringVar(&cfg.Index, "index", "", "Name of the search index where content should be indexed (will be created if it doesn't exist)")
	flags.StringVar(&cfg.SearchKey, "searchkey", "", "Optional. Search service API key; without it the key is resolved from the environment")
	flags.BoolVar(&cfg.Remove, "remove", false, "Remove the documents listed in the CSV file from the search index")
	flags.BoolVar(&cfg.RemoveAll, "removeall", false, "Remove all documents from the search index")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	// .env supplies defaults only; explicit flags and real env vars win.
	_ = godotenv.Load()

	if len(args) > 0 {
		cfg.File = args[0]
	}
	if cfg.SearchService == "" {
		cfg.SearchService = os.Getenv("SEARCHPREP_SERVICE")
	}
	if cfg.Index == "" {
		cfg.Index = os.Getenv("SEARCHPREP_INDEX")
	}

	if cfg.SearchService == "" {
		return fmt.Errorf("--searchservice is required (or set SEARCHPREP_SERVICE)")
	}
	if cfg.Index == "" {
		return fmt.Errorf("--index is required (or set SEARCHPREP_INDEX)")
	}
	if !cfg.RemoveAll && cfg.File == "" {
		return fmt.Errorf("a CSV file argument is required unless --removeall is given")
	}

	return run(cmd.Context(), cfg)
}

func run(ctx context.Context, cfg Config) error {
	logger := newLogger(cfg.Verbose).With("index", cfg.Index)

	creds, err := auth.Resolve(cfg.SearchKey)
	if err != nil {
		return err
	}
	logger.Info("resolved search credential", "source", creds.Source)

	indexer := indexing.NewTypesenseIndexer(cfg.Endpoint(), creds.APIKey, cfg.Index)
	defer indexer.Close()

	if err := indexer.HealthCheck(ctx); err != nil {
		return err
	}

	svc := indexing.NewService(indexer, logger, indexing.ServiceConfig{
		BatchSize: indexing.DefaultBatchSize,
		PageSize:  indexing.DefaultPageSize,
		Interval:  indexing.DefaultInterval,
	})

	if cfg.RemoveAll {
		removed, err := svc.PurgeAll(ctx)
		if err != nil {
			return err
		}
		logger.Info("purge complete", "removed", removed)
		return nil
	}

	if !cfg.Remove {
		if err := svc.EnsureIndex(ctx); err != nil {
			return err
		}
	}

	fmt.Println("Processing CSV file...")
	sections, header, err := ingestion.ReadSections(cfg.File, cfg.Category)
	if err != nil {
		return err
	}
	fmt.Printf("Header: %v\n", header)

	if cfg.Remove {
		removed, err := svc.RemoveSections(ctx, sections)
		if err != nil {
			return err
		}
		logger.Info("removal complete", "removed", removed)
		return nil
	}

	stats, err := svc.IndexSections(ctx, sections)
	if err != nil {
		return err
	}
	logger.Info("indexing complete", "attempted", stats.Attempted, "succeeded", stats.Succeeded, "batches", stats.Batches)
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
