package helpscout

import (
	"context"
	"fmt"
)

// ListCollections returns every collection the token can see, in the order
// the API returns them.
func (api *API) ListCollections(ctx context.Context) ([]Collection, error) {
	collections, err := Collect(Paginate(ctx, api.fetchCollectionsPage))
	if err != nil {
		return nil, fmt.Errorf("helpscout: couldn't list collections: %w", err)
	}

	return collections, nil
}

// ListArticles returns a lazy iterator over the article listing of one
// collection.  The listing records don't contain article text; fetch each
// full article with GetArticle.
func (api *API) ListArticles(ctx context.Context, collectionID string) *Iter[ArticleRef] {
	return Paginate(ctx, func(ctx context.Context, cursor *int) (Page[ArticleRef], error) {
		ep, err := api.getCollectionArticlesEndpoint(collectionID, queryFor(cursor))
		if err != nil {
			return Page[ArticleRef]{}, err
		}

		body, err := api.do(ctx, ep)
		if err != nil {
			return Page[ArticleRef]{}, fmt.Errorf("helpscout: couldn't list articles: %w", err)
		}

		var resp articlesResponse
		if err := unmarshalResponse(body, &resp); err != nil {
			return Page[ArticleRef]{}, err
		}
		if resp.Articles == nil {
			return Page[ArticleRef]{}, &Error{
				Kind:    KindMalformed,
				Message: "articles listing is missing the 'articles' key",
			}
		}

		return pageOf(resp.Articles), nil
	})
}

// GetArticle fetches one full article by ID.  The returned Article keeps the
// complete response payload in Raw, for verbatim materialization.
func (api *API) GetArticle(ctx context.Context, articleID string) (*Article, error) {
	ep, err := api.getArticleEndpoint(articleID)
	if err != nil {
		return nil, fmt.Errorf("helpscout: couldn't get article endpoint: %w", err)
	}

	body, err := api.do(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("helpscout: couldn't perform request: %w", err)
	}

	var resp articleResponse
	if err := unmarshalResponse(body, &resp); err != nil {
		return nil, err
	}
	if resp.Article == nil {
		return nil, &Error{
			Kind:    KindMalformed,
			Message: "article response is missing the 'article' key",
		}
	}

	article := resp.Article
	article.Raw = body

	return article, nil
}

func (api *API) fetchCollectionsPage(ctx context.Context, cursor *int) (Page[Collection], error) {
	ep, err := api.getCollectionsEndpoint(queryFor(cursor))
	if err != nil {
		return Page[Collection]{}, err
	}

	body, err := api.do(ctx, ep)
	if err != nil {
		return Page[Collection]{}, err
	}

	var resp collectionsResponse
	if err := unmarshalResponse(body, &resp); err != nil {
		return Page[Collection]{}, err
	}
	if resp.Collections == nil {
		return Page[Collection]{}, &Error{
			Kind:    KindMalformed,
			Message: "collections listing is missing the 'collections' key",
		}
	}

	return pageOf(resp.Collections), nil
}

func queryFor(cursor *int) ListQuery {
	if cursor == nil {
		return ListQuery{}
	}
	return ListQuery{Page: *cursor}
}

// pageOf converts a listing envelope into a Page, deriving the next-page
// cursor from the page/pages counters.
func pageOf[T any](l *listing[T]) Page[T] {
	page := Page[T]{Items: l.Items}
	if l.Page < l.Pages {
		next := l.Page + 1
		page.Next = &next
	}
	return page
}
