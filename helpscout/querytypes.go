package helpscout

// ListQuery defines the query parameters for the paged listing endpoints
// (collections and articles).
//
// The Docs API paginates by page number: each listing response carries
// 'page' and 'pages' counters, and you ask for the next page explicitly.
// A zero Page means "first page" and is omitted from the query string.
type ListQuery struct {
	Page int `url:"page,omitempty"`
}
