package helpscout

import "encoding/json"

// See https://developer.helpscout.com/docs-api/collections/list/
type Collection struct {
	ID           string `json:"id,omitempty"`
	Number       int    `json:"number,omitempty"`
	SiteID       string `json:"siteId,omitempty"`
	Slug         string `json:"slug,omitempty"`
	Visibility   string `json:"visibility,omitempty"`
	Order        int    `json:"order,omitempty"`
	Name         string `json:"name,omitempty"`
	ArticleCount int    `json:"articleCount,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// ArticleRef is the listing record for an article.  The articles listing
// doesn't contain the article text, so we keep the IDs around to fetch each
// article one by one later.
//
// See https://developer.helpscout.com/docs-api/articles/list/
type ArticleRef struct {
	ID           string `json:"id,omitempty"`
	Number       int    `json:"number,omitempty"`
	CollectionID string `json:"collectionId,omitempty"`
	Slug         string `json:"slug,omitempty"`
	Status       string `json:"status,omitempty"`
	Name         string `json:"name,omitempty"`
	PublicURL    string `json:"publicUrl,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// Article is the full record from GET /v1/articles/{id}.  Raw holds the
// complete response payload so it can be written to disk verbatim, without
// round-tripping through our (partial) field list.
//
// See https://developer.helpscout.com/docs-api/articles/get/
type Article struct {
	ID           string `json:"id,omitempty"`
	Number       int    `json:"number,omitempty"`
	CollectionID string `json:"collectionId,omitempty"`
	Slug         string `json:"slug,omitempty"`
	Status       string `json:"status,omitempty"`
	Name         string `json:"name,omitempty"`
	Text         string `json:"text,omitempty"`
	PublicURL    string `json:"publicUrl,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// listing is the paged envelope Help Scout wraps every collection/article
// listing in: {"<entity>": {"page": N, "pages": M, "items": [...]}}.
type listing[T any] struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Count int `json:"count"`
	Items []T `json:"items"`
}

type collectionsResponse struct {
	Collections *listing[Collection] `json:"collections"`
}

type articlesResponse struct {
	Articles *listing[ArticleRef] `json:"articles"`
}

type articleResponse struct {
	Article *Article `json:"article"`
}
