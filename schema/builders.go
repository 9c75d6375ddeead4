package schema

import "github.com/goliatone/go-sitekit/sitemap"

// Site carries the identity every document embeds as publisher.
type Site struct {
	Name    string
	URL     string
	LogoURL string
}

// Organization returns the site as a full Organization node, logo
// dimensions included.
func (s Site) Organization() Organization {
	return Organization{
		Type: "Organization",
		Name: s.Name,
		URL:  s.URL,
		Logo: &ImageObject{
			Type:       "ImageObject",
			URL:        s.LogoURL,
			ContentURL: s.LogoURL,
			Width:      "220",
			Height:     "36",
		},
	}
}

// Publisher returns the slimmer publisher node used inside articles.
func (s Site) Publisher() Organization {
	return Organization{
		Type: "Organization",
		Name: s.Name,
		URL:  s.URL,
		Logo: &ImageObject{
			Type:       "ImageObject",
			URL:        s.LogoURL,
			ContentURL: s.LogoURL,
		},
	}
}

type WebSiteOptions struct {
	URL               string
	Description       string
	SearchURLTemplate string
}

func (s Site) WebSite(opts WebSiteOptions) WebSite {
	pageURL := opts.URL
	if pageURL == "" {
		pageURL = s.URL
	}
	searchTemplate := opts.SearchURLTemplate
	if searchTemplate == "" {
		searchTemplate = s.URL + "?s={search_term_string}"
	}

	org := s.Organization()
	return WebSite{
		Context:     Context,
		Type:        "WebSite",
		Name:        s.Name,
		URL:         sitemap.EnsureTrailingSlash(pageURL),
		Description: opts.Description,
		Publisher:   &org,
		PotentialAction: &SearchAction{
			Type: "SearchAction",
			Target: EntryPoint{
				Type:        "EntryPoint",
				URLTemplate: searchTemplate,
			},
			QueryInput: "required name=search_term_string",
		},
	}
}

type WebPageOptions struct {
	Name        string
	URL         string
	Description string
	Image       string
}

func (s Site) WebPage(opts WebPageOptions) WebPage {
	org := s.Organization()
	return WebPage{
		Context:     Context,
		Type:        "WebPage",
		Name:        opts.Name,
		URL:         sitemap.EnsureTrailingSlash(opts.URL),
		Description: opts.Description,
		Publisher:   &org,
		Image:       opts.Image,
	}
}

type AuthorOptions struct {
	Name string
	URL  string
}

type BlogPostingOptions struct {
	Headline       string
	Description    string
	Image          string
	URL            string
	DatePublished  string
	DateModified   string
	Author         AuthorOptions
	Keywords       string
	ArticleSection string
	WordCount      int
}

func (s Site) BlogPosting(opts BlogPostingOptions) BlogPosting {
	publisher := s.Publisher()
	return BlogPosting{
		Context:        Context,
		Type:           "BlogPosting",
		Headline:       opts.Headline,
		Description:    opts.Description,
		Image:          opts.Image,
		Author:         s.author(opts.Author),
		Publisher:      &publisher,
		DatePublished:  opts.DatePublished,
		DateModified:   opts.DateModified,
		ArticleSection: opts.ArticleSection,
		Keywords:       opts.Keywords,
		WordCount:      opts.WordCount,
		MainEntityOfPage: &WebPage{
			Type: "WebPage",
			ID:   sitemap.EnsureTrailingSlash(opts.URL),
		},
	}
}

type ArticleOptions struct {
	Headline      string
	Description   string
	Image         string
	URL           string
	DatePublished string
	DateModified  string
	Author        AuthorOptions
}

func (s Site) Article(opts ArticleOptions) Article {
	publisher := s.Publisher()
	return Article{
		Context:       Context,
		Type:          "Article",
		Headline:      opts.Headline,
		Description:   opts.Description,
		Image:         opts.Image,
		Author:        s.author(opts.Author),
		Publisher:     &publisher,
		DatePublished: opts.DatePublished,
		DateModified:  opts.DateModified,
		MainEntityOfPage: &WebPage{
			Type: "WebPage",
			ID:   sitemap.EnsureTrailingSlash(opts.URL),
		},
	}
}

type ServiceOptions struct {
	Name        string
	Description string
	URL         string
	Provider    *Organization
	AreaServed  string
	ServiceType string
}

func (s Site) Service(opts ServiceOptions) Service {
	provider := opts.Provider
	if provider == nil {
		org := s.Organization()
		provider = &org
	}
	return Service{
		Context:     Context,
		Type:        "Service",
		Name:        opts.Name,
		Description: opts.Description,
		URL:         sitemap.EnsureTrailingSlash(opts.URL),
		Provider:    provider,
		AreaServed:  opts.AreaServed,
		ServiceType: opts.ServiceType,
	}
}

type QA struct {
	Question string
	Answer   string
}

func FAQ(items []QA) FAQPage {
	questions := make([]Question, 0, len(items))
	for _, item := range items {
		questions = append(questions, Question{
			Type: "Question",
			Name: item.Question,
			AcceptedAnswer: Answer{
				Type: "Answer",
				Text: item.Answer,
			},
		})
	}
	return FAQPage{
		Context:    Context,
		Type:       "FAQPage",
		MainEntity: questions,
	}
}

type OrganizationOptions struct {
	Name        string
	URL         string
	LogoURL     string
	Description string
	SameAs      []string
}

// StandaloneOrganization builds a top-level Organization document, with
// per-call overrides for the site identity.
func (s Site) StandaloneOrganization(opts OrganizationOptions) Organization {
	name := opts.Name
	if name == "" {
		name = s.Name
	}
	pageURL := opts.URL
	if pageURL == "" {
		pageURL = s.URL
	}
	logoURL := opts.LogoURL
	if logoURL == "" {
		logoURL = s.LogoURL
	}

	return Organization{
		Context: Context,
		Type:    "Organization",
		Name:    name,
		URL:     pageURL,
		Logo: &ImageObject{
			Type:       "ImageObject",
			URL:        logoURL,
			ContentURL: logoURL,
		},
		Description: opts.Description,
		SameAs:      opts.SameAs,
	}
}

func (s Site) author(opts AuthorOptions) *Person {
	name := opts.Name
	if name == "" {
		name = s.Name
	}
	return &Person{
		Type: "Person",
		Name: name,
		URL:  opts.URL,
	}
}
