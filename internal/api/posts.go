package api

import (
	"context"
	"net/http"
	"net/url"
)

const postsPath = "/posts/"

// ListPosts retrieves every post.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var payload []Post
	if err := c.Request(ctx, http.MethodGet, postsPath, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreatePost publishes a standalone post.
func (c *Client) CreatePost(ctx context.Context, post PostCreate) (Post, error) {
	var payload Post
	if err := c.Request(ctx, http.MethodPost, postsPath, post, &payload); err != nil {
		return Post{}, err
	}
	return payload, nil
}

// CreatePostForFiche attaches a post to the record ficheID.
func (c *Client) CreatePostForFiche(ctx context.Context, ficheID string, post PostCreate) (Post, error) {
	var payload Post
	endpoint := "/posts/fiches/" + url.PathEscape(ficheID) + "/posts"
	if err := c.Request(ctx, http.MethodPost, endpoint, post, &payload); err != nil {
		return Post{}, err
	}
	return payload, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.Request(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}
