package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/adapter/input"
	"github.com/jmylchreest/toastui/internal/adapter/output"
	"github.com/jmylchreest/toastui/internal/audio"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/display"
	"github.com/jmylchreest/toastui/internal/icon"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/toast"
	"github.com/jmylchreest/toastui/internal/tui"
)

type toastOptions struct {
	title         string
	message       string
	appName       string
	icon          string
	border        string
	input         bool
	combo         []string
	comboSelected string
	ok            string
	cancel        string
	durability    string
	animation     string
	position      string
	sound         string
	titleColor    string
	messageColor  string
	background    string
	opacity       float64
	template      string
	from          string
	fromFormat    string
	out           outputOptions
}

// outputOptions selects how the result is printed.
type outputOptions struct {
	format   string
	template string
	all      bool
}

var showOpts, previewOpts toastOptions

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a toast on the desktop",
	Long: `Show a toast notification window on the desktop.

Pressing OK prints the input values to stdout:
  text=<text field>
  selected=<drop-down choice>
Pressing Cancel prints "cancel". Use --output json for a JSON object, or
--output-template for a custom line.

The toast can also be read from a JSON, TOML or YAML document with --from
("-" reads stdin). Flags override the document.

Examples:
  # A plain toast in the bottom right corner
  toastui show --title "Build finished" --message "All tests passed"

  # Ask for a choice and keep the toast up until answered
  toastui show --title "Deploy" --combo staging --combo production \
    --ok=Deploy --cancel --durability never

  # Read the toast from stdin
  echo '{"title": "Hi", "ok": ""}' | toastui show --from -`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToast(cmd, &showOpts, runDesktop)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Draw a toast in the terminal",
	Long: `Draw a toast in the terminal instead of a desktop window.

The toast is placed in the same corner it would use on the desktop, with
one terminal cell standing for 8x16 pixels. It accepts the same flags as
"show".

Key bindings:
  tab, shift+tab   Move focus
  ←/→              Choose a drop-down option
  enter            Press the focused button (OK from the inputs)
  esc              Cancel
  ctrl+c           Quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToast(cmd, &previewOpts, runTerminal)
	},
}

func init() {
	rootCmd.AddCommand(showCmd, previewCmd)
	addToastFlags(showCmd, &showOpts)
	addToastFlags(previewCmd, &previewOpts)
}

func addToastFlags(cmd *cobra.Command, o *toastOptions) {
	f := cmd.Flags()
	f.StringVar(&o.title, "title", "", "Title text")
	f.StringVar(&o.message, "message", "", "Message text")
	f.StringVar(&o.appName, "app-name", "", "Application name")
	f.StringVar(&o.icon, "icon", "", "Icon path or http(s) URL")
	f.StringVar(&o.border, "border", "", "Icon border (circle, square)")
	f.BoolVar(&o.input, "input", false, "Add a text field")
	f.StringArrayVar(&o.combo, "combo", nil, "Add a drop-down option (repeatable)")
	f.StringVar(&o.comboSelected, "combo-selected", "", "Preselected drop-down option (default: first)")
	f.StringVar(&o.ok, "ok", "", "Add an OK button with this label")
	f.StringVar(&o.cancel, "cancel", "", "Add a Cancel button with this label")
	f.StringVar(&o.durability, "durability", "", "How long the toast stays (short, long, never)")
	f.StringVar(&o.animation, "animation", "", "Open/close animation (slide, fade, rotate)")
	f.StringVar(&o.position, "position", "", "Screen corner (right_bottom, right_top, left_bottom, left_top)")
	f.StringVar(&o.sound, "sound", "", "Sound (icq, apple, telegram, vk)")
	f.StringVar(&o.titleColor, "title-color", "", "Title color")
	f.StringVar(&o.messageColor, "message-color", "", "Message and app name color")
	f.StringVar(&o.background, "background", "", "Background color")
	f.Float64Var(&o.opacity, "opacity", 0, "Resting opacity (0.0-1.0)")
	f.StringVar(&o.template, "template", "", "Layout template name")
	f.StringVar(&o.from, "from", "", "Read the toast from a JSON, TOML or YAML file (- for stdin)")
	f.StringVar(&o.fromFormat, "from-format", "", "Format of --from (json, toml, yaml; default: detect)")

	f.Lookup("ok").NoOptDefVal = layout.DefaultOKLabel
	f.Lookup("cancel").NoOptDefVal = layout.DefaultCancelLabel

	addOutputFlags(cmd, &o.out)
}

func addOutputFlags(cmd *cobra.Command, o *outputOptions) {
	f := cmd.Flags()
	f.StringVarP(&o.format, "output", "o", string(output.FormatPlain), "Result format (plain, json)")
	f.StringVar(&o.template, "output-template", "", "Go template for the result, e.g. '{{.Reason}} {{.Text}}'")
	f.BoolVar(&o.all, "all", false, "Also print a result when the toast closes without a button")
}

func (o outputOptions) formatter() (output.Formatter, error) {
	return output.NewFormatter(output.FormatType(o.format), output.FormatterOptions{
		Template: o.template,
		All:      o.all,
	})
}

// collector records how the toast closed. It is written from the UI
// thread and read once the UI has released the terminal.
type collector struct {
	mu     sync.Mutex
	result output.Result
}

// press returns a button handler recording reason and the input values.
func (c *collector) press(reason toast.CloseReason) func(model.Values) {
	return func(v model.Values) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.result.Reason = reason.String()
		c.result.Text = v.Text
		c.result.Selected = v.Selected
	}
}

func (c *collector) setID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result.ID = id
}

func (c *collector) closed(reason toast.CloseReason) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result.Reason = reason.String()
}

// Result returns what was recorded so far.
func (c *collector) Result() output.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *collector) flush(w io.Writer, f output.Formatter) error {
	r := c.Result()
	if r.Reason == "" {
		return nil
	}
	return f.Format(w, r)
}

type runner func(ctx context.Context, def toast.Definition, templateName string, c *collector) error

func runToast(cmd *cobra.Command, o *toastOptions, run runner) error {
	f, err := o.out.formatter()
	if err != nil {
		return err
	}
	def, c, err := o.definition(cmd, getConfig())
	if err != nil {
		return err
	}
	err = run(cmd.Context(), def, o.template, c)
	if ferr := c.flush(cmd.OutOrStdout(), f); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

// definition builds a toast from the --from document and the flags that were
// set, on top of the configured defaults.
func (o *toastOptions) definition(cmd *cobra.Command, cfg *config.Config) (toast.Definition, *collector, error) {
	c := &collector{}
	changed := cmd.Flags().Changed

	b := toast.NewBuilder().Config(cfg.NotificationDefaults())

	if o.from != "" {
		var format input.Format
		if o.fromFormat != "" {
			f, err := input.ParseFormat(o.fromFormat)
			if err != nil {
				return toast.Definition{}, nil, err
			}
			format = f
		}
		doc, err := input.NewReader().Load(o.from, format, cfg.NotificationDefaults())
		if err != nil {
			return toast.Definition{}, nil, err
		}
		applyDocument(b, doc, c)
	}

	if changed("title") {
		b.Title(o.title)
	}
	if changed("message") {
		b.Message(o.message)
	}
	if changed("app-name") {
		b.AppName(o.appName)
	}
	if o.icon != "" {
		b.IconPathOrURL(o.icon)
	}
	if o.input {
		b.TextInput()
	}
	if len(o.combo) > 0 {
		selected := o.comboSelected
		if selected == "" {
			selected = o.combo[0]
		}
		b.ComboBox(selected, o.combo...)
	}
	if changed("ok") {
		b.OKButton(o.ok, c.press(toast.ReasonOK))
	}
	if changed("cancel") {
		b.CancelButton(o.cancel, c.press(toast.ReasonCancel))
	}

	if o.border != "" {
		v, err := model.ParseBorder(o.border)
		if err != nil {
			return toast.Definition{}, nil, err
		}
		b.IconBorder(v)
	}
	if o.durability != "" {
		v, err := model.ParseDurability(o.durability)
		if err != nil {
			return toast.Definition{}, nil, err
		}
		b.Durability(v)
	}
	if o.animation != "" {
		v, err := model.ParseAnimation(o.animation)
		if err != nil {
			return toast.Definition{}, nil, err
		}
		b.Animation(v)
	}
	if o.position != "" {
		v, err := model.ParsePosition(o.position)
		if err != nil {
			return toast.Definition{}, nil, err
		}
		b.Position(v)
	}
	if o.sound != "" {
		v, err := model.ParseSound(o.sound)
		if err != nil {
			return toast.Definition{}, nil, err
		}
		b.Sound(v)
	}

	if o.titleColor != "" {
		b.TitleColor(o.titleColor)
	}
	if o.messageColor != "" {
		b.MessageColor(o.messageColor)
	}
	if o.background != "" {
		b.BackgroundColor(o.background)
	}
	if changed("opacity") {
		if o.opacity < 0 || o.opacity > 1 {
			return toast.Definition{}, nil, fmt.Errorf("opacity must be between 0 and 1, got %g", o.opacity)
		}
		b.BackgroundOpacity(o.opacity)
	}

	return b.Definition(), c, nil
}

func applyDocument(b *toast.Builder, doc *input.Document, c *collector) {
	b.Config(doc.NotificationConfig).
		Title(doc.Title).
		Message(doc.Message).
		AppName(doc.AppName)

	if doc.TextInput {
		b.TextInput()
	}
	if len(doc.Combo) > 0 {
		b.ComboBox(doc.Selected(), doc.Combo...)
	}
	if doc.OK != nil {
		b.OKButton(*doc.OK, c.press(toast.ReasonOK))
	}
	if doc.Cancel != nil {
		b.CancelButton(*doc.Cancel, c.press(toast.ReasonCancel))
	}
}

// session holds what a toast needs besides its renderer.
type session struct {
	cfg       *config.Config
	template  *layout.LayoutConfig
	audio     *audio.Manager
	watcher   *config.Watcher
	collector *collector
}

func newSession(ctx context.Context, cfg *config.Config, templateName string, c *collector) (*session, error) {
	if templateName == "" {
		templateName = cfg.Layout.Template
	}
	tmpl, err := layout.NewLoader(config.TemplatesDir()).Load(templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout template: %w", err)
	}

	am := audio.NewManager(cfg, logger)
	if err := am.Start(ctx); err != nil {
		logger.Warn("failed to watch sounds directory", "error", err)
	}

	// Audio edits apply to a toast that is already up.
	w := config.NewWatcher(globalOpts.configPath, logger)
	w.OnReload(am.UpdateConfig)
	w.Start(ctx, cfg)

	return &session{cfg: cfg, template: tmpl, audio: am, watcher: w, collector: c}, nil
}

// preload decodes the toast's sound before the window maps.
func (s *session) preload(snd model.Sound) {
	if err := s.audio.Preload(snd); err != nil {
		logger.Debug("failed to preload sound", "sound", snd, "error", err)
	}
}

func (s *session) close() {
	s.watcher.Stop()
	s.audio.Stop()
}

// build creates the toast on r; quit is called on the UI thread once it closes.
func (s *session) build(ctx context.Context, def toast.Definition, r toast.Renderer, quit func()) (*toast.Widget, error) {
	w, err := toast.NewContext(ctx, def, r, s.options(quit)...)
	if err != nil {
		return nil, err
	}
	s.collector.setID(w.ID())
	return w, nil
}

func (s *session) options(quit func()) []toast.Option {
	return []toast.Option{
		toast.WithLogger(logger),
		toast.WithDurations(s.cfg.Durations()),
		toast.WithGeometry(s.cfg.Geometry()),
		toast.WithAnimationDuration(s.cfg.Animation.Duration.Duration()),
		toast.WithTemplate(s.template),
		toast.WithIconLoader(icon.NewLoader(s.cfg.Icon.FetchTimeout.Duration(), s.cfg.Icon.MaxBytes)),
		toast.WithSoundPlayer(s.audio),
		toast.WithOnClosed(func(reason toast.CloseReason) {
			logger.Debug("toast closed", "reason", reason)
			s.collector.closed(reason)
			quit()
		}),
	}
}

func runDesktop(ctx context.Context, def toast.Definition, templateName string, c *collector) error {
	cfg := getConfig()
	s, err := newSession(ctx, cfg, templateName, c)
	if err != nil {
		return err
	}
	defer s.close()
	s.preload(def.Config.Sound)

	app := display.NewApp(cfg, logger)
	return app.Run(ctx, func(r *display.Renderer) error {
		_, err := s.build(ctx, def, r, app.Quit)
		return err
	})
}

func runTerminal(ctx context.Context, def toast.Definition, templateName string, c *collector) error {
	cfg := getConfig()
	s, err := newSession(ctx, cfg, templateName, c)
	if err != nil {
		return err
	}
	defer s.close()
	s.preload(def.Config.Sound)

	return tui.Run(ctx, cfg, logger, func(r *tui.Renderer) error {
		_, err := s.build(ctx, def, r, r.Quit)
		return err
	})
}
