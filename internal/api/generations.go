package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fitpromo/internal/models"
)

func (c *Client) CreateGeneration(ctx context.Context, in models.GenerationCreate) (*models.Generation, error) {
	if len(in.TargetIDs) == 0 {
		return nil, errors.New("at least one target is required")
	}
	var out models.Generation
	if err := c.doJSON(ctx, http.MethodPost, "/generations", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetGeneration(ctx context.Context, id int64) (*models.Generation, error) {
	var out models.Generation
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/generations/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
