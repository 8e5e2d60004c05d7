package render

// PlaceholderKind tells presenters which kind of stand-in message to show.
type PlaceholderKind int

const (
	PlaceholderEmpty PlaceholderKind = iota
	PlaceholderLoadError
	PlaceholderNotFound
)

func (k PlaceholderKind) String() string {
	switch k {
	case PlaceholderEmpty:
		return "empty"
	case PlaceholderLoadError:
		return "load-error"
	case PlaceholderNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Placeholder occupies the content area when there is nothing to list or a
// load failed.
type Placeholder struct {
	Kind    PlaceholderKind `json:"kind"`
	Message string          `json:"message"`
	Detail  string          `json:"detail,omitempty"`
}

// Image is a normalized image reference plus the asset to substitute when it
// fails to load at display time.
type Image struct {
	Src      string `json:"src"`
	Fallback string `json:"fallback"`
	Alt      string `json:"alt"`
}

type Card struct {
	Slug     string `json:"slug"`
	Href     string `json:"href"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt,omitempty"`
	Category string `json:"category,omitempty"`
	Author   string `json:"author"`
	Date     string `json:"date,omitempty"`
	DateTime string `json:"datetime,omitempty"`
	Image    Image  `json:"image"`
}

// FeedView is either a list of cards or a single placeholder, never both.
type FeedView struct {
	Cards       []Card       `json:"cards,omitempty"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// ArticleView is the single-article page. Body holds sanitized HTML.
type ArticleView struct {
	Slug          string       `json:"slug,omitempty"`
	DocumentTitle string       `json:"document_title"`
	Title         string       `json:"title,omitempty"`
	Category      string       `json:"category,omitempty"`
	Author        string       `json:"author,omitempty"`
	Date          string       `json:"date,omitempty"`
	DateTime      string       `json:"datetime,omitempty"`
	Cover         *Image       `json:"cover,omitempty"`
	Caption       string       `json:"caption,omitempty"`
	Body          string       `json:"body,omitempty"`
	Placeholder   *Placeholder `json:"placeholder,omitempty"`
}
