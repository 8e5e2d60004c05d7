package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/relampago/internal/viewstate"
)

type keyMap struct {
	Quit      key.Binding
	Search    key.Binding
	NextTopic key.Binding
	PrevTopic key.Binding
	AllTopics key.Binding
	Open      key.Binding
	Image     key.Binding
	Page      key.Binding
	Reload    key.Binding
	Clear     key.Binding
	Back      key.Binding
	Submit    key.Binding
	Blur      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "sair")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
		NextTopic: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "próx. tópico")),
		PrevTopic: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "tópico ant.")),
		AllTopics: key.NewBinding(key.WithKeys("0"), key.WithHelp("0-9", "tópico")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "abrir")),
		Image:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "imagem")),
		Page:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "navegador")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recarregar")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "limpar filtros")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace", "h"), key.WithHelp("esc", "voltar")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "buscar")),
		Blur:      key.NewBinding(key.WithKeys("esc", "tab", "down"), key.WithHelp("esc", "lista")),
	}
}

type KeyHandler struct {
	app  *App
	keys keyMap
}

func NewKeyHandler(app *App) *KeyHandler {
	return &KeyHandler{app: app, keys: defaultKeyMap()}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return kh.app, tea.Quit
	}

	switch kh.app.view {
	case ViewArticle:
		return kh.handleArticleKeys(msg)
	default:
		if kh.app.searchInput.Focused() {
			return kh.handleSearchInput(msg)
		}
		return kh.handleFeedKeys(msg)
	}
}

// handleSearchInput feeds every edit to the reducer so results follow typing.
func (kh *KeyHandler) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Submit):
		a.dispatch(viewstate.SubmitQuery{Text: a.searchInput.Value()})
		a.searchInput.Blur()
		return a, nil
	case key.Matches(msg, kh.keys.Blur):
		a.searchInput.Blur()
		return a, nil
	}

	prev := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if a.searchInput.Value() != prev {
		a.dispatch(viewstate.ChangeQuery{Text: a.searchInput.Value()})
	}
	return a, cmd
}

func (kh *KeyHandler) handleFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, kh.keys.Search):
		return a, a.searchInput.Focus()
	case key.Matches(msg, kh.keys.NextTopic):
		kh.cycleTopic(1)
		return a, nil
	case key.Matches(msg, kh.keys.PrevTopic):
		kh.cycleTopic(-1)
		return a, nil
	case key.Matches(msg, kh.keys.Clear):
		a.searchInput.SetValue("")
		a.dispatch(viewstate.ClearCategory{})
		a.dispatch(viewstate.SubmitQuery{Text: ""})
		return a, nil
	case key.Matches(msg, kh.keys.Reload):
		if a.loadingFeed {
			return a, nil
		}
		a.setStatus(MsgReloading, StatusInfo)
		return a, a.beginManifestLoad()
	case key.Matches(msg, kh.keys.Open):
		if card, ok := a.selectedCard(); ok {
			return a, a.openArticle(card.Slug)
		}
		return a, nil
	case key.Matches(msg, kh.keys.Image):
		if card, ok := a.selectedCard(); ok {
			return a, a.openImage(card.Image)
		}
		return a, nil
	case key.Matches(msg, kh.keys.Page):
		if card, ok := a.selectedCard(); ok {
			return a, a.openPage(card.Slug)
		}
		return a, nil
	}

	if n, ok := digit(msg); ok {
		kh.selectTopic(n - 1)
		return a, nil
	}

	var cmd tea.Cmd
	a.feedList, cmd = a.feedList.Update(msg)
	return a, cmd
}

func (kh *KeyHandler) handleArticleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, kh.keys.Back):
		a.closeArticle()
		return a, nil
	case key.Matches(msg, kh.keys.Reload):
		return a, a.openArticle(a.articleSlug)
	case key.Matches(msg, kh.keys.Image):
		if a.article.Cover != nil && !a.loadingArticle {
			return a, a.openImage(*a.article.Cover)
		}
		return a, nil
	case key.Matches(msg, kh.keys.Page):
		if a.article.Placeholder == nil && !a.loadingArticle {
			return a, a.openPage(a.articleSlug)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// cycleTopic moves the selection through "all" followed by each topic.
func (kh *KeyHandler) cycleTopic(step int) {
	a := kh.app
	n := len(a.topics) + 1
	current := viewstate.ActiveTopic(a.topics, a.state) + 1
	kh.selectTopic((current+step+n)%n - 1)
}

// selectTopic picks topics[i]; a negative or out-of-range index clears the category.
func (kh *KeyHandler) selectTopic(i int) {
	a := kh.app
	if i < 0 || i >= len(a.topics) {
		a.dispatch(viewstate.ClearCategory{})
		return
	}
	a.dispatch(viewstate.SelectCategory{Label: a.topics[i]})
}

func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(string(msg.Runes))
	if err != nil {
		return 0, false
	}
	return n, true
}

// BindingsForCurrentView is what the status bar's help line shows.
func (kh *KeyHandler) BindingsForCurrentView() []key.Binding {
	k := kh.keys
	switch {
	case kh.app.view == ViewArticle:
		return []key.Binding{k.Back, k.Image, k.Page, k.Reload, k.Quit}
	case kh.app.searchInput.Focused():
		return []key.Binding{k.Submit, k.Blur}
	default:
		return []key.Binding{k.Open, k.Search, k.NextTopic, k.AllTopics, k.Image, k.Clear, k.Quit}
	}
}
