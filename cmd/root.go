// file: cmd/root.go
// version: 1.2.0
// guid: 1b2c3d4e-5f6a-7b8c-9d0e-1f2a3b4c5d6e

package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdfalk/booksearch/internal/config"
	"github.com/jdfalk/booksearch/internal/dataset"
	"github.com/jdfalk/booksearch/internal/ranker"
	"github.com/jdfalk/booksearch/internal/scheduler"
	"github.com/jdfalk/booksearch/internal/server"
)

var cfgFile string
var datasetPath string
var cacheDir string
var topK int
var kernelName string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "booksearch",
	Short: "Fuzzy search over a book title dataset",
	Long: `Booksearch downloads a title dump, keeps it in memory, and ranks
titles against your query by normalized edit-distance similarity.

Run 'booksearch download' once to fetch the dataset, then 'booksearch
search <query>' for one-shot lookups or 'booksearch serve' for the live
search web API.`,
}

// downloadCmd fetches the title dump into the cache directory.
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the title dataset",
	Long:  `Download the title dump into the cache directory, resuming a partial download if one exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker := dataset.NewDownloadTracker(true)
		path, err := dataset.DownloadDump(config.AppConfig.CacheDir, tracker)
		if err != nil {
			return fmt.Errorf("download failed: %w", err)
		}
		fmt.Printf("Dataset saved to: %s\n", path)
		return nil
	},
}

// searchCmd runs a single query against the cached dataset.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank titles against a query",
	Long:  `Score every title in the dataset against the query and print the top matches.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.AppConfig.DefaultDatasetPath(dataset.DumpFilename)
		snap, err := dataset.Load(path)
		if err != nil {
			log.Printf("[WARN] Dataset unavailable (%v), searching empty dataset", err)
		}

		rnk := ranker.NewWithKernel(ranker.KernelByName(config.AppConfig.Kernel))
		outcomes := make(chan scheduler.Outcome, 1)
		sched := scheduler.New(rnk, config.AppConfig.TopK, "cli", func(o scheduler.Outcome) {
			outcomes <- o
		})

		sub := sched.Submit(args[0], snap)
		<-sub.Done()

		o := <-outcomes
		if o.Failed() {
			return fmt.Errorf("query failed: %w", o.Err)
		}

		fmt.Printf("Top %d of %d titles for %q (%.2fms):\n",
			len(o.Result.Candidates), snap.Len(), o.Query,
			float64(o.Result.Elapsed.Microseconds())/1000.0)
		for i, c := range o.Result.Candidates {
			fmt.Printf("%3d. %6.2f  %s\n", i+1, c.Score, c.Text)
		}
		return nil
	},
}

// serveCmd starts the web server with live search.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the search web server",
	Long:  `Start the web server exposing the search API, the SSE result stream, and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rnk := ranker.NewWithKernel(ranker.KernelByName(config.AppConfig.Kernel))
		svc := server.NewSearchService(rnk, config.AppConfig.TopK, config.AppConfig.ResultCacheTTL)

		// Any load failure means an empty dataset, never a startup error.
		path := config.AppConfig.DefaultDatasetPath(dataset.DumpFilename)
		snap, err := dataset.Load(path)
		if err != nil {
			log.Printf("[WARN] Dataset not loaded yet: %v", err)
		}
		svc.SetSnapshot(snap)

		if config.AppConfig.WatchDataset && snap.Ready() {
			watcher, err := dataset.NewWatcher(path, svc.SetSnapshot)
			if err != nil {
				log.Printf("[WARN] Dataset watcher unavailable: %v", err)
			} else {
				defer watcher.Close()
				fmt.Printf("Watching dataset file: %s\n", path)
			}
		}

		srv := server.NewServer(svc)
		cfg := server.GetDefaultServerConfig()

		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if it := cmd.Flag("idle-timeout").Value.String(); it != "" {
			if d, err := time.ParseDuration(it); err == nil {
				cfg.IdleTimeout = d
			}
		}

		fmt.Printf("Serving %d titles\n", snap.Len())
		return srv.Start(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.booksearch.yaml)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "path to the title dump file")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "directory for downloaded datasets (default: $HOME/.booksearch)")
	rootCmd.PersistentFlags().IntVar(&topK, "top-k", 10, "number of results per query")
	rootCmd.PersistentFlags().StringVar(&kernelName, "kernel", "two-row", "distance kernel: table, two-row, or lithammer")

	viper.BindPFlag("dataset_path", rootCmd.PersistentFlags().Lookup("dataset"))
	viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("top_k", rootCmd.PersistentFlags().Lookup("top-k"))
	viper.BindPFlag("kernel", rootCmd.PersistentFlags().Lookup("kernel"))

	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "8080", "port to run the web server on")
	serveCmd.Flags().String("host", "localhost", "host to bind the web server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("idle-timeout", "60s", "idle timeout (e.g. 60s, 2m)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".booksearch")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()

	if config.AppConfig.CacheDir != "" {
		if err := os.MkdirAll(config.AppConfig.CacheDir, 0o755); err != nil {
			fmt.Printf("Error creating cache directory: %v\n", err)
		}
	}
}
