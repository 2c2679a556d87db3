package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sandrolain/gostokhos/pkg/config"
	"github.com/sandrolain/gostokhos/pkg/engine"
	"github.com/sandrolain/gostokhos/pkg/ext"
)

// settings holds the persistent flags shared by every subcommand.
type settings struct {
	configPath string
	seed       uint64
	debug      bool
	extensions []string
}

func newRootCmd() *cobra.Command {
	s := &settings{}

	rootCmd := &cobra.Command{
		Use:           "stokhos [command]",
		Short:         "Evaluate Stokhos stochastic expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Uint64Var(&s.seed, "seed", 0, "Seed the random source for reproducible runs")
	rootCmd.PersistentFlags().BoolVar(&s.debug, "debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringSliceVar(&s.extensions, "ext", nil, fmt.Sprintf("Extension sets to enable %v", ext.Names()))

	rootCmd.AddCommand(
		newEvalCmd(s),
		newRunCmd(s),
		newLexCmd(),
		newASTCmd(),
		newFuncsCmd(s),
		newVersionCmd(),
	)
	return rootCmd
}

// load merges the config file, if any, with the command-line flags. Flags
// win over the file; --ext adds to the file's extension list.
func (s *settings) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if s.configPath != "" {
		loaded, err := config.Load(s.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("seed") {
		seed := s.seed
		cfg.Seed = &seed
	}
	if s.debug {
		cfg.Debug = true
	}
	cfg.Extensions = append(cfg.Extensions, s.extensions...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEngine builds an engine from the merged settings, logging to the
// command's stderr.
func (s *settings) newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	cfg, err := s.load(cmd)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}

	opts = append(opts, engine.WithLogger(newLogger(cmd, cfg)))
	return engine.New(opts...), nil
}

// newLogger writes text logs to the command's stderr, at debug level when
// the config asks for it.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
