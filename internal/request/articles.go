package request

import (
	"context"
	"net/http"

	"conduit-tui/internal/decoder"
	"conduit-tui/internal/entity"
	"conduit-tui/internal/filter"
	"conduit-tui/internal/form"
	"conduit-tui/internal/utils/functional"
)

type articleRoot struct {
	Article decoder.Article `json:"article"`
}

type articlesRoot struct {
	Articles      []decoder.Article `json:"articles"`
	ArticlesCount int64             `json:"articlesCount"`
}

// FeedQuery narrows the global article list. Zero value selects
// everything.
type FeedQuery struct {
	Tag         entity.Tag
	Author      string
	FavoritedBy string
}

// Article loads a single article by slug.
func (c *Client) Article(ctx context.Context, viewer *entity.Viewer, slug entity.Slug) (entity.Article, error) {
	raw, err := c.do(ctx, http.MethodGet, "articles/"+escape(slug.String()), entity.CredentialsOf(viewer), nil)
	if err != nil {
		return entity.Article{}, err
	}
	return decodeArticle(raw, viewer)
}

// HomeFeed loads a page of the global article list, optionally narrowed
// by tag, author or favoriting user.
func (c *Client) HomeFeed(ctx context.Context, viewer *entity.Viewer, q FeedQuery, f filter.Filter) (entity.PaginatedList[entity.Article], error) {
	query := f.Query()
	if q.Tag != "" {
		query.Set("tag", q.Tag.String())
	}
	if q.Author != "" {
		query.Set("author", q.Author)
	}
	if q.FavoritedBy != "" {
		query.Set("favorited", q.FavoritedBy)
	}

	raw, err := c.do(ctx, http.MethodGet, "articles?"+query.Encode(), entity.CredentialsOf(viewer), nil)
	if err != nil {
		return entity.PaginatedList[entity.Article]{}, err
	}
	return decodeArticlePage(raw, viewer, f.Limit)
}

// PersonalFeed loads a page of the viewer's followed-authors feed.
func (c *Client) PersonalFeed(ctx context.Context, viewer *entity.Viewer, f filter.Filter) (entity.PaginatedList[entity.Article], error) {
	raw, err := c.do(ctx, http.MethodGet, "articles/feed?"+f.Query().Encode(), entity.CredentialsOf(viewer), nil)
	if err != nil {
		return entity.PaginatedList[entity.Article]{}, err
	}
	return decodeArticlePage(raw, viewer, f.Limit)
}

// CreateArticle publishes a new article from a validated editor form.
func (c *Client) CreateArticle(ctx context.Context, viewer *entity.Viewer, f form.Article) (entity.Article, error) {
	raw, err := c.do(ctx, http.MethodPost, "articles", entity.CredentialsOf(viewer), envelope{"article": f})
	if err != nil {
		return entity.Article{}, err
	}
	return decodeArticle(raw, viewer)
}

// UpdateArticle rewrites an existing article.
func (c *Client) UpdateArticle(ctx context.Context, viewer *entity.Viewer, slug entity.Slug, f form.Article) (entity.Article, error) {
	raw, err := c.do(ctx, http.MethodPut, "articles/"+escape(slug.String()), entity.CredentialsOf(viewer), envelope{"article": f})
	if err != nil {
		return entity.Article{}, err
	}
	return decodeArticle(raw, viewer)
}

// DeleteArticle removes the viewer's article.
func (c *Client) DeleteArticle(ctx context.Context, viewer *entity.Viewer, slug entity.Slug) error {
	_, err := c.do(ctx, http.MethodDelete, "articles/"+escape(slug.String()), entity.CredentialsOf(viewer), nil)
	return err
}

// Favorite marks the article as favorited by the viewer and returns the
// server's updated rendition of it.
func (c *Client) Favorite(ctx context.Context, viewer *entity.Viewer, slug entity.Slug) (entity.Article, error) {
	raw, err := c.do(ctx, http.MethodPost, "articles/"+escape(slug.String())+"/favorite", entity.CredentialsOf(viewer), nil)
	if err != nil {
		return entity.Article{}, err
	}
	return decodeArticle(raw, viewer)
}

// Unfavorite removes the viewer's favorite from the article.
func (c *Client) Unfavorite(ctx context.Context, viewer *entity.Viewer, slug entity.Slug) (entity.Article, error) {
	raw, err := c.do(ctx, http.MethodDelete, "articles/"+escape(slug.String())+"/favorite", entity.CredentialsOf(viewer), nil)
	if err != nil {
		return entity.Article{}, err
	}
	return decodeArticle(raw, viewer)
}

func decodeArticle(raw []byte, viewer *entity.Viewer) (entity.Article, error) {
	root, err := decodeBody[articleRoot](raw)
	if err != nil {
		return entity.Article{}, err
	}
	article, err := root.Article.IntoArticle(viewer)
	if err != nil {
		return entity.Article{}, dataError(err)
	}
	return article, nil
}

func decodeArticlePage(raw []byte, viewer *entity.Viewer, pageSize int64) (entity.PaginatedList[entity.Article], error) {
	root, err := decodeBody[articlesRoot](raw)
	if err != nil {
		return entity.PaginatedList[entity.Article]{}, err
	}

	articles := make([]entity.Article, 0, len(root.Articles))
	for _, dto := range root.Articles {
		article, err := dto.IntoArticle(viewer)
		if err != nil {
			return entity.PaginatedList[entity.Article]{}, dataError(err)
		}
		articles = append(articles, article)
	}

	return entity.PaginatedList[entity.Article]{
		Values:   articles,
		Total:    root.ArticlesCount,
		PageSize: pageSize,
	}, nil
}

type tagsRoot struct {
	Tags []string `json:"tags"`
}

// Tags loads the popular-tags sidebar list.
func (c *Client) Tags(ctx context.Context) ([]entity.Tag, error) {
	raw, err := c.do(ctx, http.MethodGet, "tags", nil, nil)
	if err != nil {
		return nil, err
	}
	root, err := decodeBody[tagsRoot](raw)
	if err != nil {
		return nil, err
	}
	return functional.Map(root.Tags, func(t string) entity.Tag { return entity.Tag(t) }), nil
}
