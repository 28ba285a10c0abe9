package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/numhunt/internal/config"
	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/games/numhunt"
	"github.com/vovakirdan/numhunt/internal/lang"
	"github.com/vovakirdan/numhunt/internal/logging"
	"github.com/vovakirdan/numhunt/internal/narration"
	"github.com/vovakirdan/numhunt/internal/platform/tui"
	"github.com/vovakirdan/numhunt/internal/registry"
	"github.com/vovakirdan/numhunt/internal/storage"
)

// app holds what every command builds from the global flags.
type app struct {
	cfg      config.GameConfig // before pace is applied
	lib      *narration.Library
	language lang.Language
	pace     config.PacePreset
	logger   *log.Logger
	store    *storage.Store
	closers  []io.Closer
}

type appOptions struct {
	// LogToFile keeps log lines off the alt screen.
	LogToFile bool
	OpenStore bool
}

func newApp(opts appOptions) (*app, error) {
	a := &app{}

	var err error
	if a.language, err = lang.Parse(flagLang); err != nil {
		return nil, err
	}
	if a.pace, err = config.ParsePace(flagPace); err != nil {
		return nil, err
	}

	logOpts := logging.Options{Level: flagLogLevel, Prefix: "numhunt"}
	if opts.LogToFile && config.DataDir() != "" {
		logger, closer, err := logging.File(filepath.Join(config.DataDir(), "numhunt.log"), logOpts)
		if err != nil {
			return nil, err
		}
		a.logger = logger
		a.closers = append(a.closers, closer)
	} else {
		if a.logger, err = logging.Stderr(logOpts); err != nil {
			return nil, err
		}
	}

	if a.cfg, err = config.LoadGame(flagConfig); err != nil {
		a.Close()
		return nil, err
	}
	if a.lib, err = config.LoadNarration(flagNarration); err != nil {
		a.Close()
		return nil, err
	}

	if opts.OpenStore {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			// Continue without storage - the game still works
			a.logger.Warn("could not open results database", "path", flagDBPath, "err", err)
		} else {
			a.store = store
		}
	}

	a.logger.Debug("app ready", "lang", a.language, "pace", a.pace, "config", flagConfig, "db", flagDBPath)
	return a, nil
}

// Close releases the store and the log file.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
	for _, c := range a.closers {
		c.Close()
	}
	a.closers = nil
}

// recorder returns the store as a Recorder, or nil without a store.
func (a *app) recorder() numhunt.Recorder {
	if a.store == nil {
		return nil
	}
	return a.store
}

// newGame is the tui.GameFactory shared by play, menu and serve.
func (a *app) newGame(l tui.Launch) (*numhunt.Game, error) {
	scene, err := registry.Create(l.Scene)
	if err != nil {
		return nil, err
	}

	cfg := a.cfg
	config.ApplyPace(&cfg, l.Pace)

	logger := a.logger
	audio := narration.AudioFunc(func(c narration.Cue) {
		logger.Debug("play cue", "bank", c.Bank, "index", c.Index, "lang", c.Language)
	})

	return numhunt.New(numhunt.Options{
		Config:   cfg,
		Library:  a.lib,
		Scene:    scene,
		Language: l.Language,
		Logger:   logger,
		Recorder: a.recorder(),
		Audio:    audio,
	}), nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

const defaultScene = "tabletop"

// sceneArg returns the scene named by args, or the default scene.
func sceneArg(args []string) (string, error) {
	if len(args) > 0 {
		if !registry.Exists(args[0]) {
			return "", fmt.Errorf("unknown scene %q; run 'numhunt list' to see available scenes", args[0])
		}
		return args[0], nil
	}
	if registry.Exists(defaultScene) {
		return defaultScene, nil
	}
	scenes := registry.List()
	if len(scenes) == 0 {
		return "", fmt.Errorf("no scenes registered")
	}
	return scenes[0].ID, nil
}
