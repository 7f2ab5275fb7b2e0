package greenhouse

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestGetItemsPaginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("expected per_page 100, got %q", got)
		}

		// A full first page, a short second one.
		count := perPage
		if r.URL.Query().Get("page") == "2" {
			count = 3
		}

		items := make([]string, 0, count)
		for i := 0; i < count; i++ {
			items = append(items, fmt.Sprintf(`{"id": %d}`, i))
		}
		fmt.Fprintf(w, "[%s]", strings.Join(items, ","))
	})

	client := testClient(t, mux)

	items, err := client.GetItems(client.APIURL+"/things", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != perPage+3 {
		t.Fatalf("expected %d items across pages, got %d", perPage+3, len(items))
	}

	// Ids must survive as json.Number, never float64.
	if _, ok := items[0]["id"].(json.Number); !ok {
		t.Fatalf("expected json.Number id, got %T", items[0]["id"])
	}
}

func TestGetItemsBadStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	client := testClient(t, mux)

	if _, err := client.GetItems(client.APIURL+"/things", nil); err == nil {
		t.Fatalf("expected an error for a 403 response")
	}
}

func TestRequestRetriesRateLimit(t *testing.T) {
	var calls int

	mux := http.NewServeMux()
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `[{"id": 1}]`)
	})

	client := testClient(t, mux)

	items, err := client.GetItems(client.APIURL+"/things", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Fatalf("expected a retry after 429, got %d calls", calls)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestGzipResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		fmt.Fprint(gz, `{"id": 1, "name": "Test User"}`)
		gz.Close()
	})

	client := testClient(t, mux)

	me, err := client.CheckIntegration()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if me["name"] != "Test User" {
		t.Fatalf("expected decoded gzip body, got %v", me)
	}
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestResponseBodyClosesUnderlyingGzipStream(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	fmt.Fprint(gz, `{"id": 1}`)
	gz.Close()

	underlying := &closeRecorder{Reader: &buf}
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Encoding": []string{"gzip"}},
		Body:       underlying,
	}

	body, err := responseBody(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(data) != `{"id": 1}` {
		t.Fatalf("unexpected body: %q", data)
	}

	if err := body.Close(); err != nil {
		t.Fatalf("closing body: %v", err)
	}
	if !underlying.closed {
		t.Fatalf("expected the HTTP response body to be closed with the gzip reader")
	}
}

func TestAuthorizationHeader(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		// base64("test-key:")
		if got := r.Header.Get("Authorization"); got != "Basic dGVzdC1rZXk6" {
			t.Errorf("unexpected auth header: %q", got)
		}
		fmt.Fprint(w, `{"id": 1}`)
	})

	client := testClient(t, mux)

	if _, err := client.CheckIntegration(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
