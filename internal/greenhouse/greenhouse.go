package greenhouse

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL = "https://harvest.greenhouse.io/v1"
	// Max value accepted by the Harvest API for list endpoints.
	perPage = 100
)

// Client talks to the Greenhouse Harvest API.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	auth       string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

// New creates a Harvest client authenticating with the given API key.
func New(ctx context.Context, logger *zap.Logger, apiKey string) *Client {
	return &Client{
		ctx:    ctx,
		auth:   "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey+":")),
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CheckIntegration verifies the API key by fetching the current user.
func (c *Client) CheckIntegration() (map[string]any, error) {
	var me map[string]any
	if err := c.getJSON(c.APIURL+"/users/me", nil, &me); err != nil {
		return nil, err
	}
	return me, nil
}
