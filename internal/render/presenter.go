package render

import "io"

// Presenter writes views to a concrete output format. Presenters only fail
// when the writer does.
type Presenter interface {
	Feed(w io.Writer, v FeedView) error
	Article(w io.Writer, v ArticleView) error
}

// PresenterFor returns the presenter registered under name.
func PresenterFor(name string, width int) (Presenter, bool) {
	switch name {
	case "html":
		return NewHTMLPresenter(), true
	case "text", "":
		return NewTextPresenter(width), true
	case "json":
		return JSONPresenter{Indent: "  "}, true
	default:
		return nil, false
	}
}
