package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cache "github.com/krisalay/search-cache"
)

// fileConfig is the optional YAML configuration file.
type fileConfig struct {
	StorageDir string        `yaml:"storage_dir"`
	MaxSize    int           `yaml:"max_size"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
	LogLevel   string        `yaml:"log_level"`
}

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var (
		dir        string
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "searchcache",
		Short:         "Inspect and manage an on-disk search-result cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&dir, "dir", ".searchcache", "cache storage directory")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace|debug|info|warn|error)")

	// openCache builds the cache from flags, overridden by the config
	// file when one is given.
	openCache := func() (*cache.SearchCache, error) {
		cfg := fileConfig{StorageDir: dir, LogLevel: logLevel}

		if configPath != "" {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
			if cfg.StorageDir == "" {
				cfg.StorageDir = dir
			}
			if cfg.LogLevel == "" {
				cfg.LogLevel = logLevel
			}
		}

		lvl, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			lvl = zerolog.WarnLevel
		}
		logger := zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).Level(lvl).With().Timestamp().Logger()

		opts := []cache.Option{cache.WithLogger(logger)}
		if cfg.MaxSize > 0 {
			opts = append(opts, cache.WithMaxSize(cfg.MaxSize))
		}
		if cfg.DefaultTTL > 0 {
			opts = append(opts, cache.WithDefaultTTL(cfg.DefaultTTL))
		}

		return cache.New(cfg.StorageDir, opts...)
	}

	cmd.AddCommand(
		newStatsCmd(openCache),
		newGetCmd(openCache),
		newPutCmd(openCache),
		newInvalidateCmd(openCache),
		newClearCmd(openCache),
		newConfigureCmd(openCache),
	)

	return cmd
}

type cacheOpener func() (*cache.SearchCache, error)

func newStatsCmd(open cacheOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print cache statistics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := open()
			if err != nil {
				return err
			}
			defer c.Close()

			out, err := json.MarshalIndent(c.Stats(), "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}
}

func newGetCmd(open cacheOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "get <query>",
		Short: "Look up a cached result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open()
			if err != nil {
				return err
			}
			defer c.Close()

			payload, ms, ok := c.Get(args[0])
			if !ok {
				return fmt.Errorf("not cached: %q", args[0])
			}

			out, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			cmd.Printf("(original execution: %.1f ms)\n", ms)
			return nil
		},
	}
}

func newPutCmd(open cacheOpener) *cobra.Command {
	var (
		ttl    time.Duration
		execMs float64
	)

	cmd := &cobra.Command{
		Use:   "put <query> <result-json>",
		Short: "Cache a result for a query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload any
			if err := json.Unmarshal([]byte(args[1]), &payload); err != nil {
				// Not JSON: cache the raw string.
				payload = args[1]
			}

			c, err := open()
			if err != nil {
				return err
			}
			defer c.Close()

			if ttl > 0 {
				c.PutWithTTL(args[0], payload, execMs, ttl)
			} else {
				c.Put(args[0], payload, execMs)
			}
			cmd.Printf("cached %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "entry TTL (default: cache default)")
	cmd.Flags().Float64Var(&execMs, "exec-ms", 0, "original execution time in milliseconds")

	return cmd
}

func newInvalidateCmd(open cacheOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <query>",
		Short: "Remove one cached query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open()
			if err != nil {
				return err
			}
			defer c.Close()

			if c.Invalidate(args[0]) {
				cmd.Printf("invalidated %q\n", args[0])
			} else {
				cmd.Printf("not cached: %q\n", args[0])
			}
			return nil
		},
	}
}

func newClearCmd(open cacheOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := open()
			if err != nil {
				return err
			}
			defer c.Close()

			n := c.Len()
			c.InvalidateAll()
			cmd.Printf("cleared %d entries\n", n)
			return nil
		},
	}
}

func newConfigureCmd(open cacheOpener) *cobra.Command {
	var (
		maxSize int
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Change capacity and/or default TTL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if maxSize == 0 && ttl == 0 {
				return fmt.Errorf("nothing to configure: pass --max-size and/or --ttl")
			}

			c, err := open()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Configure(maxSize, ttl); err != nil {
				return err
			}

			stats := c.Stats()
			cmd.Printf("max size %d, %d entries\n", stats.MaxSize, stats.Size)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxSize, "max-size", 0, "new capacity (0 = unchanged)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "new default TTL (0 = unchanged)")

	return cmd
}
