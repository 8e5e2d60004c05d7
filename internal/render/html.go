package render

import (
	"html/template"
	"io"
)

const htmlTemplates = `
{{define "placeholder"}}<p class="nr-{{.Kind}}">{{.Message}}{{with .Detail}}<br><small>{{.}}</small>{{end}}</p>
{{end}}

{{define "card"}}<article class="nr-card">
  <a class="nr-card__link" href="{{.Href}}" aria-label="{{.Title}}">
    <figure class="nr-card__media">
      <img src="{{.Image.Src}}" alt="{{.Image.Alt}}" loading="lazy" onerror="this.onerror=null;this.src={{.Image.Fallback}}">
      {{- with .Category}}
      <span class="nr-badge">{{.}}</span>{{end}}
    </figure>
    <div class="nr-card__body">
      <h2 class="nr-card__title">{{.Title}}</h2>
      {{- with .Excerpt}}
      <p class="nr-card__excerpt">{{.}}</p>{{end}}
      <div class="nr-card__meta">
        {{- with .Category}}<span class="nr-card__cat">{{.}}</span>{{end}}
        <span class="nr-card__author">{{.Author}}</span>
        {{- if .Date}} · <time datetime="{{.DateTime}}">{{.Date}}</time>{{end}}
      </div>
    </div>
  </a>
</article>
{{end}}

{{define "feed"}}{{with .Placeholder}}{{template "placeholder" .}}{{else}}{{range .Cards}}{{template "card" .}}{{end}}{{end}}{{end}}

{{define "article"}}{{with .Placeholder}}{{template "placeholder" .}}{{else -}}
<header class="nr-article-header">
  {{- with .Category}}
  <span class="nr-badge">{{.}}</span>{{end}}
  <h1 class="nr-article-title">{{.Title}}</h1>
  <p class="nr-article-meta">{{.Author}}{{if .Date}} · <time datetime="{{.DateTime}}" class="nr-article-date">{{.Date}}</time>{{end}}</p>
</header>
{{with .Cover}}<figure class="nr-article-cover">
  <img src="{{.Src}}" alt="{{.Alt}}" loading="lazy" onerror="this.onerror=null;this.src={{.Fallback}}">
  {{- with $.Caption}}
  <figcaption>{{.}}</figcaption>{{end}}
</figure>
{{end -}}
<div class="nr-article-content">
{{body .Body}}
</div>
{{end}}{{end}}
`

// HTMLPresenter renders markup fragments. Every text field goes through
// html/template escaping; the body is inserted as-is because the Renderer has
// already sanitized it.
type HTMLPresenter struct {
	tmpl *template.Template
}

func NewHTMLPresenter() *HTMLPresenter {
	funcs := template.FuncMap{
		"body": func(s string) template.HTML { return template.HTML(s) }, // already sanitized
	}
	return &HTMLPresenter{
		tmpl: template.Must(template.New("relampago").Funcs(funcs).Parse(htmlTemplates)),
	}
}

func (p *HTMLPresenter) Feed(w io.Writer, v FeedView) error {
	return p.tmpl.ExecuteTemplate(w, "feed", v)
}

func (p *HTMLPresenter) Article(w io.Writer, v ArticleView) error {
	return p.tmpl.ExecuteTemplate(w, "article", v)
}
