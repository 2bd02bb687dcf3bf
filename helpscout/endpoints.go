package helpscout

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// getCollectionsEndpoint returns the endpoint to list collections:
// https://developer.helpscout.com/docs-api/collections/list/
func (a *API) getCollectionsEndpoint(opts ListQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint("/v1/collections")
	if err != nil {
		return nil, fmt.Errorf("helpscout: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("helpscout: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getCollectionArticlesEndpoint returns the endpoint to list the articles in
// one collection:
// https://developer.helpscout.com/docs-api/articles/list/
func (a *API) getCollectionArticlesEndpoint(collectionID string, opts ListQuery) (*url.URL, error) {
	if collectionID == "" {
		return nil, fmt.Errorf("helpscout: please provide a collection ID to list articles")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/v1/collections/%s/articles", url.PathEscape(collectionID)))
	if err != nil {
		return nil, fmt.Errorf("helpscout: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("helpscout: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getArticleEndpoint returns the endpoint to download one full article:
// https://developer.helpscout.com/docs-api/articles/get/
func (a *API) getArticleEndpoint(articleID string) (*url.URL, error) {
	if articleID == "" {
		return nil, fmt.Errorf("helpscout: please provide an article ID to get article")
	}

	return a.resolveEndpoint(fmt.Sprintf("/v1/articles/%s", url.PathEscape(articleID)))
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	baseUri := a.BaseURI

	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("helpscout: failed to parse endpoint ref: %w", err)
	}

	return baseUri.ResolveReference(ref), nil
}
