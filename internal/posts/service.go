// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"context"
	"net/url"
	"strconv"

	"github.com/taibuivan/portal/internal/upstream"
	"github.com/taibuivan/portal/pkg/pagination"
)

const (
	postsPath    = "/posts"
	resourceName = "Post"
)

// Gateway is the read-only subset of [upstream.Client] used by [Service].
type Gateway interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

// Service implements post lookups on top of the upstream API.
type Service struct {
	gateway Gateway
}

// NewService constructs a new [Service].
func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// First returns the first [FirstPageSize] posts.
func (service *Service) First(ctx context.Context) ([]Post, error) {
	all, err := service.fetch(ctx, nil)
	if err != nil {
		return nil, err
	}

	if len(all) > FirstPageSize {
		all = all[:FirstPageSize]
	}
	return all, nil
}

/*
Page returns one upstream page.

Parameters:
  - ctx: context.Context
  - params: pagination.Params (1-indexed page, page size)

Returns:
  - []Post: The page, empty past the end
  - error: BAD_GATEWAY on upstream failure
*/
func (service *Service) Page(ctx context.Context, params pagination.Params) ([]Post, error) {
	return service.fetch(ctx, url.Values{
		"_page":  {strconv.Itoa(params.Page)},
		"_limit": {strconv.Itoa(params.Limit)},
	})
}

// ByUser returns every post written by userID.
func (service *Service) ByUser(ctx context.Context, userID string) ([]Post, error) {
	return service.fetch(ctx, url.Values{"userId": {userID}})
}

// Get returns one post, or NOT_FOUND when the upstream has no such record.
func (service *Service) Get(ctx context.Context, postID string) (*Post, error) {
	var post Post
	if err := service.gateway.Get(ctx, postsPath+"/"+url.PathEscape(postID), nil, &post); err != nil {
		return nil, upstream.MapError(err, resourceName)
	}
	return &post, nil
}

func (service *Service) fetch(ctx context.Context, query url.Values) ([]Post, error) {
	list := []Post{}
	if err := service.gateway.Get(ctx, postsPath, query, &list); err != nil {
		return nil, upstream.MapError(err, resourceName)
	}
	return list, nil
}
