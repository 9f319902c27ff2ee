package anilist

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/machinebox/graphql"
)

// DefaultEndpoint is the public AniList GraphQL API
const DefaultEndpoint = "https://graphql.anilist.co"

// Client is the generic AniList client for making queries to the AniList graphql API.  Lookups are public, so no
// token is needed.
type Client struct {
	client *graphql.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		client: graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
	}
}

func (c *Client) Query(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	req := graphql.NewRequest(query)
	req.Header.Set("Accept", "application/json")

	for key, value := range variables {
		req.Var(key, value)
	}

	if err := c.client.Run(ctx, req, result); err != nil {
		if isNetworkError(err) {
			log.Warn("AniList unreachable", "error", err)
			return domain.NetworkError{Err: err}
		}
		return err
	}
	return nil
}

func isNetworkError(err error) bool {
	var netErr *url.Error
	return errors.As(err, &netErr) && (netErr.Timeout() ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "no such host") ||
		strings.Contains(err.Error(), "i/o timeout"))
}
