package api

import (
	"context"
	"net/http"
	"net/url"
)

const fichesPath = "/ficheslapin/"

func fichePath(id string) string {
	return "/ficheslapin/" + url.PathEscape(id)
}

// ListFiches retrieves every intake record.
func (c *Client) ListFiches(ctx context.Context) ([]Fiche, error) {
	var payload []Fiche
	if err := c.Request(ctx, http.MethodGet, fichesPath, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetFiche retrieves one record.
func (c *Client) GetFiche(ctx context.Context, id string) (Fiche, error) {
	var payload Fiche
	if err := c.Request(ctx, http.MethodGet, fichePath(id), nil, &payload); err != nil {
		return Fiche{}, err
	}
	return payload, nil
}

// CreateFiche submits a new record.
func (c *Client) CreateFiche(ctx context.Context, fiche FicheCreate) (Fiche, error) {
	var payload Fiche
	if err := c.Request(ctx, http.MethodPost, fichesPath, fiche, &payload); err != nil {
		return Fiche{}, err
	}
	return payload, nil
}

// UpdateFiche sends a partial update.
func (c *Client) UpdateFiche(ctx context.Context, id string, updates FicheUpdate) (Fiche, error) {
	var payload Fiche
	if err := c.Request(ctx, http.MethodPut, fichePath(id), updates, &payload); err != nil {
		return Fiche{}, err
	}
	return payload, nil
}

// DeleteFiche removes a record.
func (c *Client) DeleteFiche(ctx context.Context, id string) error {
	return c.Request(ctx, http.MethodDelete, fichePath(id), nil, nil)
}
