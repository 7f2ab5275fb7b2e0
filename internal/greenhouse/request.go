package greenhouse

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/umutgultepe/recruiting-analyst/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"

	maxRateLimitRetries = 5
	rateLimitBackoff    = 10 * time.Second
)

// Item is one raw element of a paginated list response.
type Item map[string]any

// GetItems makes GET requests to the Harvest API and returns items from all
// pages. Numbers are preserved as json.Number so ids survive undamaged.
func (c *Client) GetItems(url string, q url.Values) ([]Item, error) {
	var items []Item

	if q == nil {
		q = make(map[string][]string)
	}
	q.Set("per_page", strconv.Itoa(perPage))

	for page := 1; ; page++ {
		q.Set("page", strconv.Itoa(page))

		req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		req = c.setHeaders(req)
		req.Header.Set("Content-Type", contentType)
		req.URL.RawQuery = q.Encode()

		resp, err := c.request(req)
		if err != nil {
			return nil, err
		}

		pageItems, err := parseItemsResponse(resp)
		if err != nil {
			return nil, err
		}

		items = append(items, pageItems...)

		if len(pageItems) < perPage {
			break
		}

		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"page %d returned a full set of %d items", page, perPage),
		))
	}

	return items, nil
}

func parseItemsResponse(resp *http.Response) ([]Item, error) {
	body, err := responseBody(resp)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var items []Item
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}

	return items, nil
}

func (c *Client) getJSON(url string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.request(req)
	if err != nil {
		return err
	}

	body, err := responseBody(resp)
	if err != nil {
		return err
	}
	defer body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	dec := json.NewDecoder(body)
	dec.UseNumber()
	return dec.Decode(target)
}

// request performs the HTTP exchange, waiting out rate-limit responses.
func (c *Client) request(req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		c.logger.Debug("make request", zap.String("url", req.URL.String()))

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		resp.Body.Close()

		if attempt >= maxRateLimitRetries {
			return nil, fmt.Errorf("rate limited after %d attempts: %s", attempt+1, req.URL.Path)
		}

		wait := retryAfter(resp)
		c.logger.Debug("rate limited, waiting",
			zap.Duration("wait", wait),
			zap.Int("attempt", attempt+1),
		)

		if err := utils.WaitFor(c.ctx, wait); err != nil {
			return nil, err
		}
	}
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return rateLimitBackoff
}

// gzipBody decompresses a response body. gzip.Reader.Close does not close the
// wrapped stream, so Close releases both: the HTTP connection must go back to
// the pool after every one of a batch report's per-application fetches.
type gzipBody struct {
	*gzip.Reader
	underlying io.Closer
}

func (b *gzipBody) Close() error {
	err := b.Reader.Close()
	if cerr := b.underlying.Close(); err == nil {
		err = cerr
	}
	return err
}

func responseBody(resp *http.Response) (io.ReadCloser, error) {
	if resp.Header.Get("Content-Encoding") == "gzip" {
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		return &gzipBody{Reader: reader, underlying: resp.Body}, nil
	}
	return resp.Body, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}
