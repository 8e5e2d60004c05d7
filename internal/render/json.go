package render

import (
	"encoding/json"
	"io"
)

type JSONPresenter struct {
	Indent string
}

func (p JSONPresenter) Feed(w io.Writer, v FeedView) error {
	return p.encode(w, v)
}

func (p JSONPresenter) Article(w io.Writer, v ArticleView) error {
	return p.encode(w, v)
}

func (p JSONPresenter) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", p.Indent)
	return enc.Encode(v)
}
