package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/go-formbind/internal/config"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/i18n"
	"github.com/goliatone/go-formbind/pkg/notify"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/html"
	"github.com/goliatone/go-formbind/pkg/renderers/tui"
	"github.com/goliatone/go-formbind/pkg/theme"
	gotheme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand once configuration is
// loaded.
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}

	a.cfg = cfg
	a.logger = slog.New(handler)
	a.logger.Debug("config loaded", "renderer", cfg.Renderer, "locale", cfg.Locale, "mode", cfg.Mode)
	return nil
}

// mode parses the configured override; empty means onChange.
func (a *app) mode() (form.Mode, error) {
	return form.ParseMode(a.cfg.Mode)
}

// notifier prints submit notifications on stderr so stdout carries only the
// rendered output.
func (a *app) notifier(cmd *cobra.Command) notify.Notifier {
	return notify.Multi(
		notify.NewWriter(cmd.ErrOrStderr()),
		notify.LogNotifier{Logger: a.logger, Level: slog.LevelDebug},
	)
}

func (a *app) themeSelector() (gotheme.ThemeSelector, error) {
	manifests := []*gotheme.Manifest{theme.DefaultManifest()}
	if path := a.cfg.Theme.File; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("theme file: %w", err)
		}
		manifest, err := theme.ParseManifest(data)
		if err != nil {
			return nil, err
		}
		manifests = append([]*gotheme.Manifest{manifest}, manifests...)
	}
	return theme.NewStaticSelector(manifests...), nil
}

func (a *app) renderOptions() (render.RenderOptions, error) {
	opts := render.RenderOptions{Locale: a.cfg.Locale}

	if dir := a.cfg.Catalog; dir != "" {
		catalog, err := i18n.LoadFS(os.DirFS(dir), "en")
		if err != nil {
			return render.RenderOptions{}, err
		}
		opts.Translator = catalog
		a.logger.Debug("catalog loaded", "dir", dir, "locales", catalog.Locales())
	}

	selector, err := a.themeSelector()
	if err != nil {
		return render.RenderOptions{}, err
	}
	palette, err := theme.Resolve(selector, a.cfg.Theme.Name, a.cfg.Theme.Variant)
	if err != nil {
		return render.RenderOptions{}, err
	}
	opts.Palette = palette
	return opts, nil
}

func (a *app) registry(out io.Writer) (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	format, err := tui.ParseOutputFormat(a.cfg.Output)
	if err != nil {
		return nil, err
	}
	tuiRenderer, err := tui.New(
		tui.WithOutput(out),
		tui.WithOutputFormat(format),
		tui.WithFlow(tui.Flow(a.cfg.Flow)),
	)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(htmlRenderer, tuiRenderer), nil
}

func writeOutput(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
