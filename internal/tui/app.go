package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/pders01/relampago/internal/config"
	"github.com/pders01/relampago/internal/debuglog"
	"github.com/pders01/relampago/internal/feed"
	"github.com/pders01/relampago/internal/media"
	"github.com/pders01/relampago/internal/render"
	"github.com/pders01/relampago/internal/storage"
	"github.com/pders01/relampago/internal/viewstate"
)

// Opener hands a resolved target to an external program.
type Opener interface {
	Open(target string) error
}

// chrome is the number of rows taken by header, topic bar, search box and
// status bar in the feed view.
const chrome = 8

type App struct {
	config     *config.Config
	loader     *feed.Loader
	renderer   *render.Renderer
	launcher   Opener
	keyHandler *KeyHandler
	loc        *time.Location

	feedList    list.Model
	searchInput textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model
	help        help.Model

	view   View
	state  viewstate.State
	store  *storage.Store
	topics []string

	// all is the full ingested collection; visible is always derived from it.
	all      []storage.Article
	visible  []storage.Article
	feedView render.FeedView
	loadErr  error

	loadingFeed    bool
	loadingArticle bool
	articleSeq     int
	manifestSeq    int
	articleSlug    string
	article        render.ArticleView
	startSlug      string

	status     string
	statusKind StatusKind
	width      int
	height     int

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(cfg *config.Config, loader *feed.Loader) *App {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}

	feedList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	feedList.SetShowTitle(false)
	feedList.SetShowStatusBar(false)
	feedList.SetFilteringEnabled(false)
	feedList.SetShowHelp(false)

	si := textinput.New()
	si.Placeholder = "Buscar por título, resumo, autor ou tópico…"
	si.Prompt = "⌕ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	app := &App{
		config: cfg,
		loader: loader,
		renderer: render.New(render.Options{
			Images:       render.ImageRulesFromConfig(cfg.Images),
			Location:     loc,
			ManifestPath: loader.ManifestPath(),
		}),
		launcher:    media.NewLauncher(cfg),
		loc:         loc,
		feedList:    feedList,
		searchInput: si,
		viewport:    viewport.New(0, 0),
		spinner:     sp,
		help:        help.New(),
		view:        ViewFeed,
		topics:      append([]string{}, cfg.UI.Topics...),
	}
	app.keyHandler = NewKeyHandler(app)
	app.refresh()

	return app
}

// OpenOnStart makes the program go straight to the article view for slug.
func (a *App) OpenOnStart(slug string) {
	a.startSlug = slug
}

// SetOpener replaces the external program launcher.
func (a *App) SetOpener(o Opener) {
	a.launcher = o
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, a.beginManifestLoad()}
	if a.startSlug != "" {
		cmds = append(cmds, a.openArticle(a.startSlug))
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		if a.view == ViewArticle && !a.loadingArticle {
			a.viewport.SetContent(a.renderArticle(a.article))
		}
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case spinner.TickMsg:
		if !a.loadingFeed && !a.loadingArticle {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case manifestLoadedMsg:
		if msg.seq != a.manifestSeq {
			debuglog.Debugf("discarding stale manifest result %d", msg.seq)
			return a, nil
		}
		a.loadingFeed = false
		if msg.err != nil {
			debuglog.Warnf("feed unavailable: %v", msg.err)
			a.loadErr = msg.err
			a.all = nil
			a.store = nil
			a.setStatus(msg.err.Error(), StatusError)
		} else {
			a.loadErr = nil
			a.store = storage.NewStore(msg.articles, a.loc)
			a.all = a.store.Posts()
			a.topics = mergeTopics(a.config.UI.Topics, a.store.Categories())
			a.clearStatus()
		}
		a.refresh()
		return a, nil

	case articleLoadedMsg:
		if msg.seq != a.articleSeq || a.view != ViewArticle {
			debuglog.Debugf("discarding stale article result for %q", msg.slug)
			return a, nil
		}
		a.loadingArticle = false
		if msg.err != nil {
			if feed.IsNotFound(msg.err) {
				debuglog.Debugf("article %q not found: %v", msg.slug, msg.err)
			} else {
				debuglog.Warnf("article %q unavailable: %v", msg.slug, msg.err)
			}
			a.article = a.renderer.ArticleFailure(msg.err)
		} else {
			a.article = a.renderer.Article(msg.article)
		}
		a.viewport.SetContent(a.renderArticle(a.article))
		a.viewport.GotoTop()
		return a, nil

	case openedMsg:
		if msg.err != nil {
			a.setStatus(msg.err.Error(), StatusError)
		} else {
			a.setStatus(MsgOpened(msg.target), StatusSuccess)
		}
		return a, nil

	case statusMsg:
		a.setStatus(msg.text, msg.kind)
		return a, nil
	}

	switch a.view {
	case ViewFeed:
		var cmd tea.Cmd
		a.feedList, cmd = a.feedList.Update(msg)
		cmds = append(cmds, cmd)
	case ViewArticle:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// dispatch runs msg through the reducer and re-renders the feed synchronously.
func (a *App) dispatch(msg viewstate.Msg) {
	a.state = viewstate.Reduce(a.state, msg)
	a.refresh()
}

func (a *App) refresh() {
	if a.loadErr != nil {
		a.visible = nil
		a.feedView = a.renderer.LoadFailure(a.loadErr)
	} else {
		a.visible = viewstate.Derive(a.all, a.state)
		a.feedView = a.renderer.Feed(a.visible)
	}

	items := make([]list.Item, len(a.feedView.Cards))
	for i, c := range a.feedView.Cards {
		items[i] = cardItem{card: c}
	}
	a.feedList.SetItems(items)
	if len(items) > 0 {
		a.feedList.Select(0)
	}
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	listHeight := height - chrome
	if listHeight < 3 {
		listHeight = 3
	}
	a.feedList.SetSize(width, listHeight)
	a.viewport.Width = width
	a.viewport.Height = height - 3

	inputWidth := width - 8
	if inputWidth < 10 {
		inputWidth = width
	}
	a.searchInput.Width = inputWidth
	a.help.Width = width
}

func (a *App) selectedCard() (render.Card, bool) {
	item, ok := a.feedList.SelectedItem().(cardItem)
	if !ok {
		return render.Card{}, false
	}
	return item.card, true
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

func (a *App) clearStatus() {
	a.status = ""
	a.statusKind = StatusInfo
}

// mergeTopics appends categories found in the data that no configured topic covers.
func mergeTopics(configured, found []string) []string {
	topics := append([]string{}, configured...)
	seen := lo.Associate(configured, func(t string) (string, bool) {
		return storage.CanonicalCategory(t), true
	})
	for _, c := range found {
		if !seen[storage.CanonicalCategory(c)] {
			seen[storage.CanonicalCategory(c)] = true
			topics = append(topics, c)
		}
	}
	return topics
}

// loadingArticleText names the article being loaded when the manifest has it.
func (a *App) loadingArticleText() string {
	if rec, ok := a.store.Lookup(a.articleSlug); ok && rec.Title != "" {
		return MsgLoadingArticle + " " + truncateEnd(rec.Title, a.width/2)
	}
	return MsgLoadingArticle
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewFeed:
		content = a.feedContent()
	case ViewArticle:
		if a.loadingArticle {
			content = renderCentered(a.width, a.height-3, a.spinner.View()+" "+renderMuted(a.loadingArticleText()))
		} else {
			content = a.viewport.View()
		}
	}

	separatorWidth := a.width - 1
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render(strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, content, separator, a.statusBar())
}

func (a *App) feedContent() string {
	header := renderHeader(CompactLogo, a.loader.Source().String(), a.width)
	topics := renderTopicBar(a.topics, viewstate.ActiveTopic(a.topics, a.state), a.width)
	search := renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), a.searchInput.Width)

	bodyHeight := a.height - chrome
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch {
	case a.loadingFeed:
		body = renderCentered(a.width, bodyHeight, a.spinner.View()+" "+renderMuted(MsgLoadingFeed))
	case a.feedView.Placeholder != nil:
		body = renderCentered(a.width, bodyHeight, a.renderPlaceholder(*a.feedView.Placeholder))
	default:
		body = a.feedList.View()
	}

	return lipgloss.JoinVertical(lipgloss.Top, header, topics, search, body)
}

func (a *App) renderPlaceholder(ph render.Placeholder) string {
	if ph.Kind == render.PlaceholderEmpty && a.loadErr == nil && len(a.all) == 0 {
		return GetCompactBanner(ph.Message)
	}
	msg := renderMuted(ph.Message)
	if ph.Kind != render.PlaceholderEmpty {
		msg = ErrorMessageStyle.Render(ph.Message)
	}
	if ph.Detail != "" {
		msg = lipgloss.JoinVertical(lipgloss.Center, msg, renderHelp(ph.Detail))
	}
	return msg
}

func (a *App) statusBar() string {
	var left string
	switch {
	case a.status != "":
		style := StatusInfoStyle
		switch a.statusKind {
		case StatusSuccess:
			style = StatusSuccessStyle
		case StatusWarn:
			style = StatusWarnStyle
		case StatusError:
			style = StatusErrorStyle
		}
		left = style.Render(truncateEnd(a.status, a.width/2))
	case a.view == ViewFeed && a.loadErr == nil && !a.loadingFeed:
		summary := MsgResultsCount(len(a.visible))
		if a.state.Filter().Active() {
			summary = MsgFilterSummary(a.state.Category, a.state.Query, len(a.visible))
		}
		left = StatusInfoStyle.Render(summary)
	}

	helpView := a.help.ShortHelpView(a.keyHandler.BindingsForCurrentView())
	if left == "" {
		return lipgloss.NewStyle().Padding(0, 1).Render(helpView)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(left + "  " + helpView)
}
