package request

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"conduit-tui/internal/entity"
	"conduit-tui/internal/filter"
	"conduit-tui/internal/form"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL+"/api", DefaultTimeout, discardLogger())
}

func testViewer() *entity.Viewer {
	return &entity.Viewer{
		Credentials: entity.Credentials{Username: "jake", AuthToken: "token-1"},
	}
}

func assertKind(t *testing.T, err error, want Kind) *Error {
	t.Helper()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v (%T) is not a *request.Error", err, err)
	}
	if e.Kind != want {
		t.Fatalf("kind = %v, want %v (messages %v)", e.Kind, want, e.Messages)
	}
	return e
}

const articleBody = `{"article": {
	"title": "How to train your dragon",
	"slug": "how-to-train-your-dragon",
	"body": "Very carefully.",
	"createdAt": "2016-02-18T03:22:56.637Z",
	"updatedAt": "2016-02-18T03:48:35.824Z",
	"tagList": ["dragons"],
	"description": "Ever wonder how?",
	"author": {"username": "anah", "bio": null, "image": null, "following": false},
	"favorited": true,
	"favoritesCount": 1
}}`

func TestValidationErrors_OrderPreserved(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"errors": {"email": ["can't be blank"], "password": ["is too short", "is too common"], "username": ["has already been taken"]}}`)
	})

	_, err := client.Login(context.Background(), form.Login{})
	e := assertKind(t, err, KindValidation)

	want := []string{
		"email can't be blank",
		"password is too short, is too common",
		"username has already been taken",
	}
	if !reflect.DeepEqual(e.Messages, want) {
		t.Errorf("messages = %v, want %v", e.Messages, want)
	}
	if !reflect.DeepEqual(Messages(err), want) {
		t.Errorf("Messages(err) = %v, want %v", Messages(err), want)
	}
}

func TestValidationErrors_UnparsablePayloadIsDataError(t *testing.T) {
	payloads := []string{
		`<html>502 Bad Gateway</html>`,
		`{"message": "boom"}`,
		`{"errors": "not an object"}`,
		``,
	}
	for _, payload := range payloads {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, payload)
		})

		_, err := client.Login(context.Background(), form.Login{})
		e := assertKind(t, err, KindDecode)
		if !reflect.DeepEqual(e.Messages, []string{"Data error"}) {
			t.Errorf("payload %q: messages = %v, want [Data error]", payload, e.Messages)
		}
	}
}

func TestTimeoutIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client := New(server.URL+"/api", 20*time.Millisecond, discardLogger())
	_, err := client.Tags(context.Background())
	e := assertKind(t, err, KindNetwork)
	if !reflect.DeepEqual(e.Messages, []string{"Request error"}) {
		t.Errorf("messages = %v, want [Request error]", e.Messages)
	}
}

func TestConnectionRefusedIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(server.URL+"/api", DefaultTimeout, discardLogger())
	_, err := client.Tags(context.Background())
	assertKind(t, err, KindNetwork)
}

func TestMalformedSuccessBodyIsDataError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"article": `)
	})

	_, err := client.Article(context.Background(), nil, "some-slug")
	e := assertKind(t, err, KindDecode)
	if !reflect.DeepEqual(e.Messages, []string{"Data error"}) {
		t.Errorf("messages = %v, want [Data error]", e.Messages)
	}
}

func TestMalformedTimestampIsDataError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"article": {"slug": "s", "createdAt": "not-a-date", "updatedAt": "not-a-date", "author": {"username": "anah"}}}`)
	})

	_, err := client.Article(context.Background(), nil, "s")
	assertKind(t, err, KindDecode)
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth atomic.Value
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		io.WriteString(w, articleBody)
	})

	if _, err := client.Article(context.Background(), testViewer(), "how-to-train-your-dragon"); err != nil {
		t.Fatalf("authenticated: %v", err)
	}
	if got := gotAuth.Load(); got != "Token token-1" {
		t.Errorf("Authorization = %q, want %q", got, "Token token-1")
	}

	if _, err := client.Article(context.Background(), nil, "how-to-train-your-dragon"); err != nil {
		t.Fatalf("anonymous: %v", err)
	}
	if got := gotAuth.Load(); got != "" {
		t.Errorf("anonymous Authorization = %q, want empty", got)
	}
}

func TestEachCallIssuesOneRequest(t *testing.T) {
	var requests atomic.Int64
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"errors": {"article": ["not found"]}}`)
	})

	if _, err := client.Article(context.Background(), nil, "gone"); err == nil {
		t.Fatal("expected error")
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("requests = %d, want 1 (no retries)", got)
	}
}

func TestHomeFeed_QueryAndPagination(t *testing.T) {
	var gotQuery atomic.Value
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query().Encode())
		io.WriteString(w, `{"articles": [], "articlesCount": 25}`)
	})

	page, err := client.HomeFeed(context.Background(), nil,
		FeedQuery{Tag: "dragons"}, filter.ForPage(3, 10))
	if err != nil {
		t.Fatalf("HomeFeed: %v", err)
	}

	query := gotQuery.Load().(string)
	if query != "limit=10&offset=20&tag=dragons" {
		t.Errorf("query = %q", query)
	}
	if page.Total != 25 || page.PageSize != 10 {
		t.Errorf("page = total %d size %d, want 25/10", page.Total, page.PageSize)
	}
	if page.TotalPages() != 3 {
		t.Errorf("TotalPages() = %d, want 3", page.TotalPages())
	}
}

func TestFavoriteUnfavorite_MethodAndPath(t *testing.T) {
	type call struct{ method, path string }
	var last atomic.Value
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		last.Store(call{r.Method, r.URL.Path})
		io.WriteString(w, articleBody)
	})
	viewer := testViewer()

	article, err := client.Favorite(context.Background(), viewer, "how-to-train-your-dragon")
	if err != nil {
		t.Fatalf("Favorite: %v", err)
	}
	if got := last.Load().(call); got != (call{"POST", "/api/articles/how-to-train-your-dragon/favorite"}) {
		t.Errorf("favorite call = %+v", got)
	}
	if !article.Favorited {
		t.Error("favorited = false")
	}

	if _, err := client.Unfavorite(context.Background(), viewer, "how-to-train-your-dragon"); err != nil {
		t.Fatalf("Unfavorite: %v", err)
	}
	if got := last.Load().(call); got != (call{"DELETE", "/api/articles/how-to-train-your-dragon/favorite"}) {
		t.Errorf("unfavorite call = %+v", got)
	}
}

func TestDecodeServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "single field",
			raw:  `{"errors": {"email": ["can't be blank"]}}`,
			want: []string{"email can't be blank"},
		},
		{
			name: "messages joined per field",
			raw:  `{"errors": {"password": ["is too short", "is too common"]}}`,
			want: []string{"password is too short, is too common"},
		},
		{
			name: "extra top-level keys skipped",
			raw:  `{"status": 422, "errors": {"body": ["can't be empty"]}}`,
			want: []string{"body can't be empty"},
		},
		{
			name: "empty errors object",
			raw:  `{"errors": {}}`,
			want: nil,
		},
		{name: "no errors key", raw: `{"message": "boom"}`, wantErr: true},
		{name: "errors not an object", raw: `{"errors": ["boom"]}`, wantErr: true},
		{name: "not json", raw: `<html></html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeServerErrors([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("got %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("messages = %v, want %v", got, tt.want)
			}
		})
	}
}
