// Command "clipper" cuts a clip out of a media file by dragging in and out
// handles on a range slider.
//
// Usage:
//
//	clipper [<flags>] [<file>]
//
// Flags:
//
//	-V, --version        print version and exit
//	-c, --config=path    config file [default: $XDG_CONFIG_HOME/clipper/config.toml]
//	    --init-config    write the default config file and exit
//	    --no-history     do not record clips in the history database
//	-l, --log-file=path  log JSON to file [default: from config]
//	-S, --log-stderr     log to stderr instead of a file
//	-v, --verbose        enable debug logging
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	getopt "github.com/pborman/getopt/v2"
	"github.com/rs/zerolog/log"

	"github.com/jask/clipper/internal/config"
	"github.com/jask/clipper/internal/history"
	"github.com/jask/clipper/internal/logging"
	"github.com/jask/clipper/internal/media"
	"github.com/jask/clipper/internal/tui"
)

const version = "0.3.0"

var (
	flagVersion    bool
	flagConfig     string
	flagInitConfig bool
	flagNoHistory  bool
	flagLogFile    string
	flagLogStderr  bool
	flagVerbose    bool
)

func init() {
	getopt.SetParameters("[<file>]")

	getopt.FlagLong(&flagVersion, "version", 'V', "print version and exit")
	getopt.FlagLong(&flagConfig, "config", 'c', "config file")
	getopt.FlagLong(&flagInitConfig, "init-config", 0, "write the default config file and exit")
	getopt.FlagLong(&flagNoHistory, "no-history", 0, "do not record clips")
	getopt.FlagLong(&flagLogFile, "log-file", 'l', "log JSON to file")
	getopt.FlagLong(&flagLogStderr, "log-stderr", 'S', "log to stderr")
	getopt.FlagLong(&flagVerbose, "verbose", 'v', "enable debug logging")
}

func main() {
	getopt.Parse()

	if flagVersion {
		fmt.Println(version)
		return
	}
	if flagConfig != "" {
		_ = os.Setenv("CLIPPER_CONFIG", flagConfig)
	}
	if flagInitConfig {
		wrote, err := config.WriteDefault()
		if err != nil {
			fatalf("config: %v", err)
		}
		if wrote {
			fmt.Println("wrote", config.Path())
		} else {
			fmt.Println("exists", config.Path())
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("config: %v", err)
	}

	logFile := cfg.Log.File
	if flagLogFile != "" {
		logFile = flagLogFile
	}
	if flagLogStderr {
		logFile = ""
	}
	doneLogging, err := logging.Init(logging.Options{
		File:    logFile,
		Stderr:  flagLogStderr,
		Level:   cfg.Log.Level,
		Verbose: flagVerbose,
	})
	if err != nil {
		fatalf("logging: %v", err)
	}
	defer doneLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	services := tui.Services{
		Prober:  media.NewProber(cfg.Media.FFprobe),
		Clipper: media.NewClipper(cfg.Media.FFmpeg),
	}
	if !flagNoHistory {
		store, err := history.Open(cfg.Database.Path)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.Database.Path).Msg("history disabled")
		} else {
			defer store.Close()
			services.History = store
			if cfg.Database.Keep > 0 {
				n, err := store.Prune(ctx, cfg.Database.Keep)
				if err != nil {
					log.Warn().Err(err).Msg("prune history")
				} else if n > 0 {
					log.Info().Int64("deleted", n).Msg("pruned history")
				}
			}
		}
	}

	file := strings.Join(getopt.Args(), " ")
	app, err := tui.New(ctx, cfg, services, file)
	if err != nil {
		log.Error().Err(err).Msg("init")
		doneLogging()
		fatalf("%v", err)
	}

	log.Info().Str("version", version).Str("file", file).Msg("start")
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("exit")
		fmt.Printf("error: %v\n", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "fatal: "+format+"\n", args...)
	os.Exit(1)
}
