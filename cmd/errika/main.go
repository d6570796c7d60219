package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/idilsaglam/errika/internal/cli"
	"github.com/idilsaglam/errika/internal/config"
	"github.com/idilsaglam/errika/internal/logging"
	"github.com/idilsaglam/errika/internal/store"
	"github.com/idilsaglam/errika/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	cfgPath := flag.String("config", "", "config file (default $ERRIKA_CONFIG or ~/.config/errika/config.toml)")
	theme := flag.String("theme", "", "output theme: classic, neon or mono")
	groupPending := flag.Bool("group", false, "group ls output by pending/completed")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}
	if *theme == "" {
		*theme = cfg.UI.Theme
	}
	ui.SetTheme(*theme)

	var logOut io.Writer = io.Discard
	if f, err := logging.OpenFile(cfg.LogPath()); err != nil {
		ui.Fail("log: " + err.Error())
	} else {
		logOut = f
	}
	log := logging.New(cfg.Log.Level, logOut)

	st := store.New(cfg.TodoPath(), store.WithLogger(log))
	if err := st.Load(); err != nil {
		var ce *store.CorruptionError
		if errors.As(err, &ce) && ce.Backup != "" {
			ui.Fail(fmt.Sprintf("could not read todos, starting empty (old file kept at %s)", ce.Backup))
		} else {
			ui.Fail("could not read todos, changes will not be saved: " + err.Error())
		}
		logging.ErrorWithStack(log, err, "load todos")
	}

	// Hand the remaining args to the CLI runner.
	code := cli.Run(flag.Args(), cli.Options{
		Group: *groupPending,
		Store: st,
		Log:   log,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	log.Debug().Int("code", code).Msg("exit")
	if f, ok := logOut.(*os.File); ok {
		_ = f.Close()
	}
	os.Exit(code)
}
