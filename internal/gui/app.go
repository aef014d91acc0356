package gui

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/spellbee/internal"
	"codeberg.org/snonux/spellbee/internal/audio"
	"codeberg.org/snonux/spellbee/internal/cards"
	"codeberg.org/snonux/spellbee/internal/player"
	apptheme "codeberg.org/snonux/spellbee/internal/theme"
	"codeberg.org/snonux/spellbee/internal/words"
)

// LoadErrorMessage replaces the word list when loading fails
const LoadErrorMessage = "Error loading words. Please check the data location and restart spellbee."

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	countLabel  *widget.Label
	themeButton *ttwidget.Button
	helpButton  *ttwidget.Button
	body        *fyne.Container
	accordion   *widget.Accordion

	// State management
	store    *words.Store
	sections []*tierSection
	themes   *apptheme.Controller

	pronouncer Pronouncer
	config     *Config
	logger     *zap.Logger

	// Background loading
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI application configuration
type Config struct {
	DataLocation string // directory or http(s) base URL of the word lists
	Layout       words.Layout
	AudioDir     string
	AudioFormat  string
	Logger       *zap.Logger
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		DataLocation: "data",
		Layout:       words.DefaultLayout(),
		AudioDir:     "audio",
		AudioFormat:  "mp3",
		Logger:       zap.NewNop(),
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	myApp := app.NewWithID("org.codeberg.snonux.spellbee")
	myApp.SetIcon(GetAppIcon())
	return newApplication(myApp, config)
}

func newApplication(fyneApp fyne.App, config *Config) *Application {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	if config.DataLocation == "" {
		config.DataLocation = defaults.DataLocation
	}
	if len(config.Layout.Tiers) == 0 {
		config.Layout = defaults.Layout
	}
	if config.AudioDir == "" {
		config.AudioDir = defaults.AudioDir
	}
	if config.AudioFormat == "" {
		config.AudioFormat = defaults.AudioFormat
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:    fyneApp,
		config: config,
		logger: config.Logger,
		ctx:    ctx,
		cancel: cancel,
	}
	a.pronouncer = player.New(
		player.Assets{Root: config.AudioDir, Ext: config.AudioFormat},
		audio.NewCommandBackend(),
		player.WithLogger(config.Logger),
	)
	a.themes = apptheme.NewController(fyneApp.Preferences(), a.applyTheme)

	a.setupUI()
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Spellbee v%s - Spelling Bee Study Aid", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(720, 800))

	a.countLabel = widget.NewLabel("Loading words...")
	a.countLabel.TextStyle = fyne.TextStyle{Italic: true}

	// Tooltips are set after the tooltip layer is created
	a.themeButton = ttwidget.NewButton(themeButtonLabel(a.themes.Mode()), a.onToggleTheme)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	title := widget.NewLabel("Spelling Bee Study Aid")
	title.TextStyle = fyne.TextStyle{Bold: true}

	toolbar := container.NewHBox(
		title,
		widget.NewSeparator(),
		a.countLabel,
		layout.NewSpacer(),
		a.themeButton,
		a.helpButton,
	)

	a.body = container.NewStack(container.NewCenter(widget.NewProgressBarInfinite()))

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		nil, nil, nil,
		a.body,
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.themeButton.SetToolTip("Toggle light/dark theme (t)")
	a.helpButton.SetToolTip("Show hotkeys (h)")

	a.window.SetOnClosed(a.shutdown)

	a.setupKeyboardShortcuts()
}

// shutdown cancels loading and playback and waits until every background
// goroutine has released its widgets
func (a *Application) shutdown() {
	a.cancel()
	a.wg.Wait()
	if w, ok := a.pronouncer.(interface{ Wait() }); ok {
		w.Wait()
	}
}

// Run loads the word lists in the background and starts the GUI
func (a *Application) Run() {
	a.loadWords()
	a.window.ShowAndRun()
}

// loadWords fetches every tier concurrently; the UI is only touched once
// the whole load has either succeeded or failed
func (a *Application) loadWords() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		store, err := words.Load(a.ctx, words.NewSource(a.config.DataLocation), a.config.Layout, a.logger)
		fyne.Do(func() { a.applyLoad(store, err) })
	}()
}

func (a *Application) applyLoad(store *words.Store, err error) {
	if err != nil {
		a.logger.Error("Failed to load word lists",
			zap.String("location", a.config.DataLocation),
			zap.Error(err))
		a.showLoadError()
		return
	}

	a.store = store
	a.sections = a.sections[:0]

	items := make([]*widget.AccordionItem, 0, len(store.Tiers()))
	for _, tier := range store.Tiers() {
		deck, err := cards.Render(store, tier)
		if err != nil {
			a.logger.Warn("Skipping tier", zap.String("tier", string(tier)), zap.Error(err))
			continue
		}
		sec := newTierSection(a.ctx, deck, a.pronouncer)
		sec.setToolTips()
		a.sections = append(a.sections, sec)
		items = append(items, widget.NewAccordionItem(sectionTitle(store, tier), sec.content))
	}

	a.accordion = widget.NewAccordion(items...)
	a.accordion.MultiOpen = true
	if len(items) > 0 {
		a.accordion.Open(0)
	}

	a.countLabel.SetText(fmt.Sprintf("%d words total", store.Count()))
	a.setBody(container.NewVScroll(a.accordion))

	a.logger.Info("Word lists loaded",
		zap.Int("tiers", len(a.sections)),
		zap.Int("words", store.Count()))
}

func (a *Application) showLoadError() {
	a.store = nil
	a.sections = nil
	a.accordion = nil

	msg := widget.NewLabel(LoadErrorMessage)
	msg.Importance = widget.DangerImportance
	msg.Alignment = fyne.TextAlignCenter
	msg.Wrapping = fyne.TextWrapWord

	a.countLabel.SetText("0 words total")
	a.setBody(container.NewCenter(msg))
}

func (a *Application) setBody(obj fyne.CanvasObject) {
	a.body.Objects = []fyne.CanvasObject{obj}
	a.body.Refresh()
}

func (a *Application) onToggleTheme() {
	a.themes.Toggle()
}

// applyTheme is the theme controller's apply hook
func (a *Application) applyTheme(mode apptheme.Mode) {
	a.app.Settings().SetTheme(newVariantTheme(mode))
	if a.themeButton != nil {
		a.themeButton.SetText(themeButtonLabel(mode))
	}
	a.logger.Debug("Theme applied", zap.String("mode", string(mode)))
}

// toggleSection flips the master state of the n-th tier (zero based)
func (a *Application) toggleSection(n int) {
	if n < 0 || n >= len(a.sections) {
		return
	}
	a.sections[n].deck.ToggleAll()
}
