package storage

// Article is a single news record as published in the static feed files.
// Optional fields are left empty when absent; defaults are applied at render time.
type Article struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt,omitempty"`
	Author   string `json:"author,omitempty"`
	Image    string `json:"image,omitempty"`
	Content  string `json:"content,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// Manifest is the top-level feed document.
type Manifest struct {
	Posts []Article `json:"posts"`
}
