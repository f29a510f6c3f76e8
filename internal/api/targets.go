package api

import (
	"context"
	"fmt"
	"net/http"

	"fitpromo/internal/models"
)

func (c *Client) ListTargets(ctx context.Context) ([]models.Target, error) {
	var out []models.Target
	if err := c.doJSON(ctx, http.MethodGet, "/targets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTarget(ctx context.Context, in models.TargetCreate) (*models.Target, error) {
	var out models.Target
	if err := c.doJSON(ctx, http.MethodPost, "/targets", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTarget(ctx context.Context, id int64, in models.TargetUpdate) (*models.Target, error) {
	var out models.Target
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/targets/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTarget(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/targets/%d", id), nil, nil)
}
