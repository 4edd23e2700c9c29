package cfbd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, baseURL string, maxPages int) *Client {
	t.Helper()

	return NewClient(ClientConfig{
		BaseURL:  baseURL,
		APIKey:   "test-key",
		MaxPages: maxPages,
	})
}

func TestFetchPlayers_WalksPagesUntilEmpty(t *testing.T) {
	t.Parallel()

	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		if r.URL.Path != "/players" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write([]byte(`[{"id":"p1","first_name":"A","last_name":"One"}]`))
		case "2":
			_, _ = w.Write([]byte(`[{"id":"p2","first_name":"B","last_name":"Two"}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	result := newTestClient(t, srv.URL, 10).FetchPlayers(context.Background(), 2024)

	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}
	if result.APICalls != 3 {
		t.Fatalf("expected 3 api calls (two pages plus the empty one), got %d", result.APICalls)
	}
	if len(result.Problems) != 0 {
		t.Fatalf("expected no problems, got %v", result.Problems)
	}
	for _, header := range authHeaders {
		if header != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", header)
		}
	}
}

func TestFetchPlayers_StopsAtPageCap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"x"}]`))
	}))
	defer srv.Close()

	result := newTestClient(t, srv.URL, 2).FetchPlayers(context.Background(), 2024)

	if result.APICalls != 2 {
		t.Fatalf("expected page cap to stop the walk at 2 calls, got %d", result.APICalls)
	}
	if len(result.Problems) != 0 {
		t.Fatalf("page cap is a silent stop, got problems %v", result.Problems)
	}
}

func TestNewClient_ClampsPageCap(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		maxPages int
		want     int
	}{
		{"zero takes the default", 0, 200},
		{"negative raised to one", -3, 1},
		{"in range kept", 7, 7},
		{"ceiling kept", 500, 500},
		{"over the ceiling clamped", 1000, 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := NewClient(ClientConfig{APIKey: "test-key", MaxPages: tc.maxPages})
			if c.maxPages != tc.want {
				t.Fatalf("expected page cap %d, got %d", tc.want, c.maxPages)
			}
		})
	}
}

func TestFetchPlayers_AuthFailureStopsWalk(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			_, _ = w.Write([]byte(`[{"id":"p1"}]`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	result := newTestClient(t, srv.URL, 10).FetchPlayers(context.Background(), 2024)

	if len(result.Records) != 1 {
		t.Fatalf("expected the first page to be kept, got %d records", len(result.Records))
	}
	if result.APICalls != 2 {
		t.Fatalf("expected 2 api calls, got %d", result.APICalls)
	}
	if len(result.Problems) != 1 || !strings.Contains(result.Problems[0], "auth:") {
		t.Fatalf("expected one auth problem, got %v", result.Problems)
	}
}

func TestFetchPlayers_ServerErrorIsHTTPProblem(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	result := newTestClient(t, srv.URL, 10).FetchPlayers(context.Background(), 2024)

	if len(result.Problems) != 1 || !strings.Contains(result.Problems[0], "http: unexpected status 500") {
		t.Fatalf("expected an http problem, got %v", result.Problems)
	}
	if result.APICalls != 1 {
		t.Fatalf("expected 1 api call, got %d", result.APICalls)
	}
}

func TestFetchPlayers_NonArrayBodyIsShapeProblem(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"maintenance"}`))
	}))
	defer srv.Close()

	result := newTestClient(t, srv.URL, 10).FetchPlayers(context.Background(), 2024)

	if len(result.Problems) != 1 || !strings.Contains(result.Problems[0], "shape:") {
		t.Fatalf("expected a shape problem, got %v", result.Problems)
	}
}

func TestFetchPlayers_NullBodyIsShapeProblem(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	result := newTestClient(t, srv.URL, 10).FetchPlayers(context.Background(), 2024)

	if len(result.Problems) != 1 || !strings.Contains(result.Problems[0], "shape: expected a JSON array") {
		t.Fatalf("expected a shape problem for a null body, got %v", result.Problems)
	}
	if result.APICalls != 1 {
		t.Fatalf("expected the walk to stop after the null page, got %d calls", result.APICalls)
	}
}

func TestFetchPlayers_TransportErrorRedactsAPIKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	result := newTestClient(t, srv.URL, 10).FetchPlayers(context.Background(), 2024)

	if len(result.Problems) != 1 || !strings.Contains(result.Problems[0], "network:") {
		t.Fatalf("expected a network problem, got %v", result.Problems)
	}
	if strings.Contains(result.Problems[0], "test-key") {
		t.Fatalf("api key leaked into problem text: %s", result.Problems[0])
	}
	if result.APICalls != 1 {
		t.Fatalf("expected the failed attempt to be counted, got %d", result.APICalls)
	}
}

func TestFetchPlayers_SkipsElementsWithoutID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			_, _ = w.Write([]byte(`[{"first_name":"No","last_name":"ID"},{"id":"p9"},7]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	result := newTestClient(t, srv.URL, 10).FetchPlayers(context.Background(), 2024)

	if len(result.Records) != 1 || result.Records[0].ID != "p9" {
		t.Fatalf("expected only the record with an id, got %+v", result.Records)
	}
	if len(result.Problems) != 2 {
		t.Fatalf("expected two skip problems, got %v", result.Problems)
	}
}

func TestFetchTeams_SingleRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("year") != "2024" {
			t.Errorf("unexpected year %s", r.URL.Query().Get("year"))
		}
		_, _ = w.Write([]byte(`[{"school":"Alabama","abbreviation":"ALA"},{"mascot":"No School"}]`))
	}))
	defer srv.Close()

	result := newTestClient(t, srv.URL, 10).FetchTeams(context.Background(), 2024)

	if result.APICalls != 1 {
		t.Fatalf("expected exactly one call, got %d", result.APICalls)
	}
	if len(result.Records) != 1 || result.Records[0].School != "Alabama" {
		t.Fatalf("unexpected records %+v", result.Records)
	}
	if len(result.Problems) != 1 || !strings.Contains(result.Problems[0], "missing school") {
		t.Fatalf("expected a skip problem for the school-less row, got %v", result.Problems)
	}
}
