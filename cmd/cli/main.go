package main

import (
	"fmt"
	"os"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/vidfetch-go/internal/app"
	"github.com/yourusername/vidfetch-go/internal/domain"
	"github.com/yourusername/vidfetch-go/internal/infrastructure"
	"github.com/yourusername/vidfetch-go/pkg/logger"
)

var (
	configPath string
	quality    string
	sampleMode bool
	rootCmd    = &cobra.Command{
		Use:   "vidfetch",
		Short: "Vidfetch CLI - Download videos from YouTube, TikTok, Instagram, and Facebook",
		Long:  `A command-line interface for resolving and downloading videos from supported platforms.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	downloadCmd.Flags().StringVarP(&quality, "quality", "q", domain.QualityDefault, "Preferred quality (1080, 720, 480, audio)")
	downloadCmd.Flags().BoolVar(&sampleMode, "sample", false, "Resolve against sample videos instead of live endpoints")
	historyCmd.Flags().Int("limit", 20, "Maximum number of jobs to show")

	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)

	cleanupCmd.Flags().Int("keep", 20, "Number of newest downloads to keep")
	rootCmd.AddCommand(cleanupCmd)
}

// cliEnv wires the pipeline the same way the server does, minus the
// HTTP layer. The logger stays quiet so progress output is readable.
type cliEnv struct {
	config   *domain.Config
	pipeline *app.Pipeline
	store    *infrastructure.FileStore
	repo     *infrastructure.SQLiteDownloadRepository
}

func buildEnv() (*cliEnv, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if sampleMode {
		config.Resolver.SampleMode = true
	}

	log, err := logger.New(logger.Config{
		Level:      "error",
		Format:     "console",
		OutputPath: "stderr",
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(config.Download.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	repo, err := infrastructure.NewSQLiteDownloadRepository(config.History.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	registry := infrastructure.NewResolverRegistry(&config.Resolver, log)
	downloader := infrastructure.NewHTTPDownloader(&config.Download, log)
	store := infrastructure.NewFileStore(config.Download.Dir, log)
	notifier := infrastructure.NewNotificationService(&config.Notification, log)

	return &cliEnv{
		config:   config,
		pipeline: app.NewPipeline(registry, downloader, store, repo, notifier, log),
		store:    store,
		repo:     repo,
	}, nil
}

func (e *cliEnv) close() {
	e.repo.Close()
}

// consoleObserver prints job lifecycle events to stdout and releases
// done once the job reaches a terminal state.
type consoleObserver struct {
	done   chan struct{}
	once   sync.Once
	failed bool
}

func newConsoleObserver() *consoleObserver {
	return &consoleObserver{done: make(chan struct{})}
}

func (o *consoleObserver) OnStart(url string) {
	fmt.Printf("Downloading %s\n", url)
}

func (o *consoleObserver) OnProgress(percent int) {
	fmt.Printf("\r%3d%%", percent)
}

func (o *consoleObserver) OnSuccess(filePath string) {
	fmt.Printf("\rSaved to %s\n", filePath)
	o.finish(false)
}

func (o *consoleObserver) OnError(message string) {
	fmt.Printf("\rError: %s\n", message)
	o.finish(true)
}

func (o *consoleObserver) finish(failed bool) {
	o.once.Do(func() {
		o.failed = failed
		close(o.done)
	})
}

var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Resolve a video URL and download it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := buildEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer env.close()

		observer := newConsoleObserver()
		env.pipeline.SetObserver(observer)

		_, result := env.pipeline.DownloadVideo(args[0], quality)
		if !result.Valid {
			fmt.Fprintf(os.Stderr, "Error: %s\n", result.Message)
			os.Exit(1)
		}

		<-observer.done
		env.pipeline.Wait()
		if observer.failed {
			os.Exit(1)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [url]",
	Short: "Check whether a URL is downloadable",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result := domain.ValidateURL(args[0])
		fmt.Printf("Valid: %v\n", result.Valid)
		fmt.Printf("Platform: %s\n", domain.DetectPlatform(args[0]))
		fmt.Printf("Message: %s\n", result.Message)
		if !result.Valid {
			os.Exit(1)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List downloaded files",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := buildEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer env.close()

		files, err := env.store.ListDownloads()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Println("No downloads yet.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PLATFORM\tTITLE\tSIZE\tMODIFIED")
		for _, f := range files {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				f.Platform,
				truncate(f.Title, 40),
				f.SizeHuman,
				f.ModifiedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent download jobs",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := buildEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer env.close()

		limit, _ := cmd.Flags().GetInt("limit")
		downloads, err := env.pipeline.History(limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tURL\tPLATFORM\tSTATUS\tCREATED")
		for _, d := range downloads {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				truncate(d.ID, 8),
				truncate(d.URL, 40),
				d.Platform,
				d.Status,
				d.CreatedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download statistics",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := buildEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer env.close()

		stats, err := env.pipeline.Stats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		used, err := env.store.TotalStorageUsed()
		if err != nil {
			used = 0
		}

		fmt.Println("Download Statistics:")
		fmt.Printf("  Total:       %d\n", stats.Total)
		fmt.Printf("  Resolving:   %d\n", stats.Resolving)
		fmt.Printf("  Downloading: %d\n", stats.Downloading)
		fmt.Printf("  Completed:   %d\n", stats.Completed)
		fmt.Printf("  Failed:      %d\n", stats.Failed)
		fmt.Printf("  Storage:     %s\n", infrastructure.FormatFileSize(used))
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old downloads, keeping only the newest files",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := buildEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer env.close()

		keep, _ := cmd.Flags().GetInt("keep")
		deleted, err := env.store.CleanupOldest(keep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %d old download(s).\n", deleted)
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
