package naver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("id", "secret", 0)
	c.baseURL = srv.URL
	c.httpClient = srv.Client()
	return c, srv
}

func TestSearch_SendsCredentialHeaders(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Naver-Client-Id") != "id" || r.Header.Get("X-Naver-Client-Secret") != "secret" {
			t.Errorf("credential headers missing: %v", r.Header)
		}
		if got := r.URL.Query().Get("query"); got != "삼성전자" {
			t.Errorf("query = %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "date" {
			t.Errorf("sort = %q", got)
		}
		json.NewEncoder(w).Encode(SearchResult{Total: 1, Items: []Item{{Title: "t"}}})
	})

	result, err := c.Search(context.Background(), "삼성전자", SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("items = %d, want 1", len(result.Items))
	}
}

func TestSearch_UnauthorizedMapsToSentinel(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := c.Search(context.Background(), "쿼리", SearchOptions{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request should not reach the server")
	})
	if _, err := c.Search(context.Background(), "   ", SearchOptions{}); err == nil {
		t.Errorf("expected error for blank query")
	}
}

func TestSearchAll_PaginatesUntilTotal(t *testing.T) {
	total := 250
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		display, _ := strconv.Atoi(r.URL.Query().Get("display"))

		n := display
		if start+n-1 > total {
			n = total - start + 1
		}
		items := make([]Item, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, Item{Link: fmt.Sprintf("https://news.example/%d", start+i)})
		}
		json.NewEncoder(w).Encode(SearchResult{Total: total, Start: start, Display: display, Items: items})
	})

	items, err := c.SearchAll(context.Background(), "쿼리", 1000, SearchOptions{Sort: "date"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != total {
		t.Errorf("collected %d items, want %d", len(items), total)
	}
	if items[0].Link != "https://news.example/1" || items[total-1].Link != fmt.Sprintf("https://news.example/%d", total) {
		t.Errorf("pagination order broken: first=%q last=%q", items[0].Link, items[total-1].Link)
	}
}

func TestSearchAll_CapsAtMaxResults(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		items := make([]Item, 100)
		json.NewEncoder(w).Encode(SearchResult{Total: 10000, Items: items})
	})

	items, err := c.SearchAll(context.Background(), "쿼리", 150, SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 150 {
		t.Errorf("collected %d items, want cap of 150", len(items))
	}
}

func TestSearchAll_StopsOnShortPage(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(SearchResult{Total: 10000, Items: make([]Item, 3)})
	})

	if _, err := c.SearchAll(context.Background(), "쿼리", 500, SearchOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("made %d calls, want 1 (short page ends pagination)", calls)
	}
}

func TestVerify(t *testing.T) {
	status := http.StatusOK
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("display") != "1" {
			t.Errorf("verify should request a single result, got display=%s", r.URL.Query().Get("display"))
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(SearchResult{Total: 1, Items: []Item{{}}})
	})

	if err := c.Verify(context.Background()); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}

	status = http.StatusUnauthorized
	if err := c.Verify(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
