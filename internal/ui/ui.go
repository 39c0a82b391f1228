package ui

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/pictx/internal/gallery"
	"github.com/desertthunder/pictx/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	GalleryView
	ViewerView
	AlertView
)

// Options configures a [Model].
type Options struct {
	BaseURL     string
	Preferences gallery.FlagStore // durable; holds the theme
	Logger      *log.Logger
	OpenURL     func(string) error // defaults to the system browser
	CopyURL     func(string) error // defaults to the system clipboard
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	session *gallery.Session
	prefs   gallery.FlagStore
	logger  *log.Logger
	baseURL *url.URL
	openURL func(string) error
	copyURL func(string) error

	view     ViewState
	prevView ViewState
	width    int
	height   int
	viewport viewport.Model
	cursor   int
	palette  *Palette
	dark     bool
	source   gallery.IndexSource
	indexed  bool
	status   string
	alert    string
	dragging bool
	dragX    int
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model over session.
func NewModel(ctx context.Context, session *gallery.Session, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}
	if opts.CopyURL == nil {
		opts.CopyURL = clipboard.WriteAll
	}

	m := &Model{
		ctx:      ctx,
		session:  session,
		prefs:    opts.Preferences,
		logger:   opts.Logger,
		openURL:  opts.OpenURL,
		copyURL:  opts.CopyURL,
		view:     LoadingView,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     newKeyMap(),
	}

	if base, err := url.Parse(opts.BaseURL); err == nil && opts.BaseURL != "" {
		m.baseURL = base
	}

	if m.prefs != nil {
		dark, err := m.prefs.Get(shared.ThemeDarkKey)
		if err != nil {
			m.logger.Warn("failed to read theme preference", "error", err)
		}
		m.dark = dark
	}
	m.palette = PaletteFor(m.dark)

	return m
}

// Init starts by loading the server-rendered first page.
func (m *Model) Init() tea.Cmd {
	return m.loadDocument()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.scan(true)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) && m.view != AlertView {
			return m, tea.Quit
		}
		switch m.view {
		case GalleryView:
			return m.handleGalleryKeys(msg)
		case ViewerView:
			return m.handleViewerKeys(msg)
		case AlertView:
			m.view = m.prevView
			m.alert = ""
			return m, nil
		}

	case tea.MouseMsg:
		switch m.view {
		case GalleryView:
			return m.handleGalleryMouse(msg)
		case ViewerView:
			return m.handleViewerMouse(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgDocumentLoaded:
		data := msg.data.(documentLoaded)
		m.view = GalleryView
		if data.err != nil {
			m.logger.Error("failed to load gallery page", "error", data.err)
			m.showAlert(fmt.Sprintf("Could not load the gallery: %v", data.err))
			return m, m.loadIndex()
		}
		m.session.Render(data.photos)
		m.refresh()
		return m, tea.Batch(m.loadIndex(), m.scan(false))

	case MsgIndexLoaded:
		m.source = m.session.ApplyListing(msg.data.(gallery.ListingResult))
		m.indexed = true
		m.logger.Debug("photo index ready", "source", m.source, "photos", m.session.Index.Len())
		m.syncViewer()
		return m, nil

	case MsgPageLoaded:
		res := msg.data.(gallery.PageResult)
		cards := m.session.Fetcher.Complete(res)
		switch {
		case res.Err != nil:
			m.status = "Couldn't load more photos. Scroll to retry."
		case !m.session.Fetcher.State().HasMore:
			m.status = "All photos loaded."
		default:
			m.status = fmt.Sprintf("Loaded %d more photos.", len(cards))
		}
		m.refresh()
		return m, m.scan(false)

	case MsgReveal:
		m.session.Tracker.Reveal(msg.data.([]*gallery.Card)...)
		m.refresh()
		return m, nil

	case MsgHintExpired:
		m.session.Viewer.HideHint()
		return m, nil

	case MsgBrowserOpened:
		data := msg.data.(struct {
			url string
			err error
		})
		if data.err != nil {
			m.logger.Warn("failed to open browser", "url", data.url, "error", data.err)
			m.status = fmt.Sprintf("Could not open browser: %v", data.err)
		} else {
			m.status = "Opened " + data.url
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleGalleryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := gridColumns(m.width)
	n := m.session.Gallery.Len()

	switch {
	case key.Matches(msg, m.keys.theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m, m.openCard(m.cursor)
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-cols, n)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(cols, n)
	case key.Matches(msg, m.keys.left):
		m.moveCursor(-1, n)
	case key.Matches(msg, m.keys.right):
		m.moveCursor(1, n)
	case key.Matches(msg, m.keys.pgUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, m.keys.pgDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	default:
		return m, nil
	}

	return m, m.scan(true)
}

func (m *Model) handleGalleryMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.SetYOffset(m.viewport.YOffset - 3)
		return m, m.scan(true)
	case tea.MouseButtonWheelDown:
		m.viewport.SetYOffset(m.viewport.YOffset + 3)
		return m, m.scan(true)
	case tea.MouseButtonLeft:
		pos := cardAt(msg.X, msg.Y-headerRows+m.viewport.YOffset, gridColumns(m.width), m.session.Gallery.Len())
		if pos < 0 {
			return m, nil
		}
		m.cursor = pos
		m.refresh()
		return m, m.openCard(pos)
	}
	return m, nil
}

func (m *Model) handleViewerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	input := m.session.Input

	switch {
	case key.Matches(msg, m.keys.left):
		input.KeyPress(gallery.KeyLeft)
	case key.Matches(msg, m.keys.right):
		input.KeyPress(gallery.KeyRight)
	case key.Matches(msg, m.keys.back):
		input.KeyPress(gallery.KeyEscape)
	case key.Matches(msg, m.keys.theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.browser):
		return m, m.openCurrent()
	case key.Matches(msg, m.keys.copy):
		m.copyCurrent()
	}

	m.syncViewer()
	return m, nil
}

func (m *Model) handleViewerMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	input := m.session.Input
	x, y := colsToPx(msg.X), rowsToPx(msg.Y)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = true
		m.dragX = x
		input.TouchStart(x)

	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		if input.TouchEnd(x) || input.Swiped(m.dragX, x) {
			break
		}
		image := m.imageRect()
		if image.Contains(x, y) {
			input.ImageTap(x, image)
		} else {
			input.BackgroundClick()
		}
	}

	m.syncViewer()
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoadingView:
		return m.palette.help.Render("Loading gallery…")
	case GalleryView:
		return m.renderGallery()
	case ViewerView:
		return m.renderViewer()
	case AlertView:
		return m.renderAlert()
	default:
		return ""
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-headerRows-footerRows, 1)
	m.session.Tracker.SetLayout(gridLayout(width))
	m.session.Viewer.SetViewportWidth(colsToPx(width))
	m.help.Width = width
	m.refresh()
}

func (m *Model) refresh() {
	cards := m.session.Gallery.Cards()
	m.viewport.SetContent(renderGrid(m.palette, cards, gridColumns(m.width), m.cursor))
}

// scan schedules reveal of cards near the viewport and, when trigger is set, checks for infinite scroll.
func (m *Model) scan(trigger bool) tea.Cmd {
	if m.width == 0 {
		return nil
	}

	var cmds []tea.Cmd
	visible := gallery.Rect{
		X: 0,
		Y: rowsToPx(m.viewport.YOffset),
		W: colsToPx(m.width),
		H: rowsToPx(m.viewport.Height),
	}
	if cards := m.session.Tracker.Scan(visible); len(cards) > 0 {
		cmds = append(cmds, tea.Tick(m.session.Tracker.Delay(), func(time.Time) tea.Msg {
			return revealMsg(cards)
		}))
	}
	if trigger {
		cmds = append(cmds, m.fetchPage())
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchPage() tea.Cmd {
	f := m.session.Fetcher
	if m.session.Gallery.Len() == 0 {
		return nil
	}
	pageHeight := gridLayout(m.width).Height(m.session.Gallery.Len())
	if !f.ShouldTrigger(rowsToPx(m.viewport.YOffset), rowsToPx(m.viewport.Height), pageHeight) {
		return nil
	}

	page, ok := f.Begin()
	if !ok {
		return nil
	}
	m.status = fmt.Sprintf("Loading page %d…", page)

	ctx := m.ctx
	return func() tea.Msg {
		return pageLoadedMsg(f.Request(ctx, page))
	}
}

func (m *Model) loadDocument() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		photos, err := session.FetchDocument(ctx)
		return documentLoadedMsg(photos, err)
	}
}

func (m *Model) loadIndex() tea.Cmd {
	ctx, loader := m.ctx, m.session.Loader
	return func() tea.Msg {
		return indexLoadedMsg(loader.Fetch(ctx))
	}
}

func (m *Model) openCard(pos int) tea.Cmd {
	card := m.session.Gallery.Card(pos)
	if card == nil || !m.session.Input.ThumbnailClick(card.Photo.FullURL) {
		return nil
	}
	m.view = ViewerView
	return m.hintTimer()
}

func (m *Model) hintTimer() tea.Cmd {
	v := m.session.Viewer
	if !v.HintVisible() {
		return nil
	}
	return tea.Tick(v.HintDuration(), func(time.Time) tea.Msg { return hintExpiredMsg() })
}

// syncViewer returns to the grid once the viewer has closed, keeping the cursor on the last photo shown.
func (m *Model) syncViewer() {
	v := m.session.Viewer
	if v.IsOpen() {
		if i := v.State().CurrentIndex; i < m.session.Gallery.Len() {
			m.cursor = i
		}
		return
	}
	if m.view == ViewerView {
		m.view = GalleryView
		m.refresh()
		m.ensureVisible()
	}
}

func (m *Model) moveCursor(delta, n int) {
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.refresh()
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	top := (m.cursor / gridColumns(m.width)) * cardRows
	bottom := top + cardRows
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m *Model) toggleTheme() {
	dark := !m.dark
	if m.prefs != nil {
		if err := m.prefs.Set(shared.ThemeDarkKey, dark); err != nil {
			m.logger.Warn("failed to save theme preference", "error", err)
			m.status = "Theme changed for this session only."
		}
	}
	m.dark = dark
	m.palette = PaletteFor(dark)
	m.refresh()
}

func (m *Model) resolve(ref string) string {
	if m.baseURL == nil {
		return ref
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return m.baseURL.ResolveReference(rel).String()
}

func (m *Model) openCurrent() tea.Cmd {
	photo, ok := m.session.Viewer.Current()
	if !ok {
		return nil
	}
	target, open := m.resolve(photo.FullURL), m.openURL
	return func() tea.Msg {
		return browserOpenedMsg(target, open(target))
	}
}

func (m *Model) copyCurrent() {
	photo, ok := m.session.Viewer.Current()
	if !ok {
		return
	}
	target := m.resolve(photo.FullURL)
	if err := m.copyURL(target); err != nil {
		m.logger.Warn("failed to copy url", "error", err)
		m.status = "Clipboard unavailable."
		return
	}
	m.status = "Copied " + target
}

func (m *Model) showAlert(text string) {
	if m.view != AlertView {
		m.prevView = m.view
	}
	m.alert = text
	m.view = AlertView
}

// imageRect is the viewer's image box in logical pixels.
func (m *Model) imageRect() gallery.Rect {
	w, h, x, y := m.imageBox()
	return gallery.Rect{X: colsToPx(x), Y: rowsToPx(y), W: colsToPx(w), H: rowsToPx(h)}
}

// imageBox is the viewer's image box in cells: width, height, left, top.
func (m *Model) imageBox() (int, int, int, int) {
	w := max(min(m.width-8, 72), 10)
	h := max(m.height-headerRows-footerRows-4, 3)
	return w, h, max((m.width-w)/2, 0), headerRows
}

func (m *Model) header() string {
	text := fmt.Sprintf("pictx · %d photos", m.session.Gallery.Len())
	if m.indexed {
		text += fmt.Sprintf(" · index %s (%d)", m.source, m.session.Index.Len())
	}
	return m.palette.title.MarginBottom(0).Render(text)
}

func (m *Model) footer(bindings ...key.Binding) string {
	status := m.palette.warn.Render(m.status)
	return status + "\n" + m.help.ShortHelpView(bindings)
}

func (m *Model) renderGallery() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.viewport.View(),
		m.footer(m.keys.up, m.keys.down, m.keys.enter, m.keys.theme, m.keys.quit),
	)
}

func (m *Model) renderViewer() string {
	v := m.session.Viewer
	photo, ok := v.Current()
	if !ok {
		return m.renderGallery()
	}
	i := v.State().CurrentIndex

	prev, next := " ", " "
	if i > 0 {
		prev = "‹"
	}
	if i < v.Len()-1 {
		next = "›"
	}

	w, h, _, _ := m.imageBox()
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.palette.ok.Render(displayTitle(photo.Title)),
		"",
		m.palette.help.Render(m.resolve(photo.FullURL)),
		"",
		fmt.Sprintf("%s  %d / %d  %s", prev, i+1, v.Len(), next),
	)
	box := m.palette.frame.
		Width(w-2).
		Height(h-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)

	hint := ""
	if v.HintVisible() {
		hint = m.palette.warn.Render("Swipe or tap the left/right side of the photo to navigate")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hint),
		m.footer(m.keys.left, m.keys.right, m.keys.back, m.keys.browser, m.keys.copy, m.keys.quit),
	)
}

func (m *Model) renderAlert() string {
	title := m.palette.err.Render("Notice")
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.alert, m.palette.help.Render("Press any key to continue"))
}
