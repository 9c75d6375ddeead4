// Package schema builds schema.org JSON-LD documents for site pages.
// Types carry the @context/@type discriminators as plain tagged fields so
// documents marshal with encoding/json and nothing else.
package schema

const Context = "https://schema.org"

type ImageObject struct {
	Type       string `json:"@type"`
	URL        string `json:"url"`
	ContentURL string `json:"contentUrl,omitempty"`
	Width      string `json:"width,omitempty"`
	Height     string `json:"height,omitempty"`
}

type Organization struct {
	Context     string       `json:"@context,omitempty"`
	Type        string       `json:"@type"`
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	Logo        *ImageObject `json:"logo,omitempty"`
	Description string       `json:"description,omitempty"`
	SameAs      []string     `json:"sameAs,omitempty"`
}

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type EntryPoint struct {
	Type        string `json:"@type"`
	URLTemplate string `json:"urlTemplate"`
}

type SearchAction struct {
	Type       string     `json:"@type"`
	Target     EntryPoint `json:"target"`
	QueryInput string     `json:"query-input"`
}

type WebSite struct {
	Context         string        `json:"@context"`
	Type            string        `json:"@type"`
	Name            string        `json:"name"`
	URL             string        `json:"url"`
	Description     string        `json:"description,omitempty"`
	Publisher       *Organization `json:"publisher,omitempty"`
	PotentialAction *SearchAction `json:"potentialAction,omitempty"`
}

type WebPage struct {
	Context     string        `json:"@context,omitempty"`
	Type        string        `json:"@type"`
	ID          string        `json:"@id,omitempty"`
	Name        string        `json:"name,omitempty"`
	URL         string        `json:"url,omitempty"`
	Description string        `json:"description,omitempty"`
	Publisher   *Organization `json:"publisher,omitempty"`
	Image       string        `json:"image,omitempty"`
}

type BlogPosting struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	Image            string        `json:"image,omitempty"`
	Author           *Person       `json:"author,omitempty"`
	Publisher        *Organization `json:"publisher,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	DateModified     string        `json:"dateModified,omitempty"`
	MainEntityOfPage *WebPage      `json:"mainEntityOfPage,omitempty"`
	ArticleSection   string        `json:"articleSection,omitempty"`
	Keywords         string        `json:"keywords,omitempty"`
	WordCount        int           `json:"wordCount,omitempty"`
}

type Article struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	Image            string        `json:"image,omitempty"`
	Author           *Person       `json:"author,omitempty"`
	Publisher        *Organization `json:"publisher,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	DateModified     string        `json:"dateModified,omitempty"`
	MainEntityOfPage *WebPage      `json:"mainEntityOfPage,omitempty"`
}

type Service struct {
	Context     string        `json:"@context"`
	Type        string        `json:"@type"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url"`
	Provider    *Organization `json:"provider,omitempty"`
	AreaServed  string        `json:"areaServed,omitempty"`
	ServiceType string        `json:"serviceType,omitempty"`
}

type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}
