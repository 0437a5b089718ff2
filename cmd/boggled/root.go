package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/milden6/boggle"
	"github.com/milden6/boggle/internal/config"
)

var (
	cfgFile string
	v       = viper.New()
	cfg     *config.Config
	logger  = zap.NewNop()

	newLogger = config.LogConfig.NewLogger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "boggled",
	Short: "Find every dictionary word in a 4x4 letter grid",
	Long: `boggled finds the words hidden in a 4x4 grid of letters. Words are
spelled by moving between adjacent cells, diagonals included, without using
a cell twice.

Quick Start:
  boggled solve catdogxxxxxxxxxx       Print the words on one board
  boggled serve                        Answer boards over TCP
  boggled compile words.trie           Build a dictionary snapshot
  boggled dump words.trie              Show a snapshot's layout
  boggled words --prefix ca            List dictionary words

Configuration is read from .boggle.yml, BOGGLE_* environment variables
(e.g. BOGGLE_SERVER_PORT) and flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .boggle.yml, can also use BOGGLE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("dict", "d", "word-list.txt", "word list, one lowercase word per line")
	rootCmd.PersistentFlags().String("snapshot", "", "compiled dictionary to load instead of the word list")

	addFlagValidation(rootCmd.PersistentFlags(), "log-level", validateLevel)

	v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("dictionary.path", rootCmd.PersistentFlags().Lookup("dict"))
	v.BindPFlag("dictionary.snapshot", rootCmd.PersistentFlags().Lookup("snapshot"))
}

func setup(*cobra.Command, []string) error {
	file := cfgFile
	if file == "" {
		file = os.Getenv(config.EnvPrefix + "_CONFIG_FILE")
	}

	config.Init(v, file)
	if err := config.Read(v); err != nil {
		return err
	}

	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c

	l, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger = l
	boggle.SetLogger(logger.Named("boggle"))

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("file", used))
	}
	return nil
}

// loadDictionary opens the configured snapshot, or builds the trie from the
// word list when there is none.
func loadDictionary(ctx context.Context) (*boggle.Trie, error) {
	var (
		trie *boggle.Trie
		err  error
	)
	if cfg.Dictionary.Snapshot != "" {
		trie, err = boggle.Open(cfg.Dictionary.Snapshot)
	} else {
		trie, err = boggle.Load(ctx, cfg.Dictionary.Path)
	}
	if err != nil {
		logDictionaryError(err)
		return nil, err
	}
	return trie, nil
}

func logDictionaryError(err error) {
	logger.Error("dictionary unavailable",
		zap.String("path", cfg.Dictionary.Path),
		zap.String("snapshot", cfg.Dictionary.Snapshot),
		zap.Error(err))
}
