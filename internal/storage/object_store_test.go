package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/craftedu/coursecraft-backend/internal/config"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ObjectStoreURL:    srv.URL,
		ObjectStoreBucket: "course-media",
	}
	return NewClient(cfg, zerolog.Nop()), srv
}

func TestUploadReturnsPublicURL(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte

	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	url, err := client.Upload(context.Background(), "a/b/png/x.png", "image/png", []byte("data"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotPath != "/course-media/a/b/png/x.png" {
		t.Errorf("path = %q", gotPath)
	}
	if gotContentType != "image/png" {
		t.Errorf("content-type = %q", gotContentType)
	}
	if string(gotBody) != "data" {
		t.Errorf("body = %q", gotBody)
	}
	want := srv.URL + "/course-media/a/b/png/x.png"
	if url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
}

func TestUploadErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Upload(context.Background(), "k", "text/plain", []byte("x"))
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("err = %v, want ErrUpload", err)
	}
}

func TestDeleteToleratesMissingObject(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if err := client.Delete(context.Background(), "gone"); err != nil {
		t.Fatalf("Delete on 404: %v", err)
	}
}

func TestDeleteSurfacesServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if err := client.Delete(context.Background(), "k"); err == nil {
		t.Fatal("expected an error on 500")
	}
}

func TestObjectKeyLayout(t *testing.T) {
	courseID := uuid.New()
	lessonID := uuid.New()

	key := ObjectKey(courseID, lessonID, "video/mp4", "intro.mp4")

	parts := strings.SplitN(key, "/", 4)
	if len(parts) != 4 {
		t.Fatalf("key = %q, want 4 segments", key)
	}
	if parts[0] != courseID.String() || parts[1] != lessonID.String() {
		t.Errorf("key ids = %s/%s", parts[0], parts[1])
	}
	if parts[2] != "mp4" {
		t.Errorf("kind = %q, want mp4", parts[2])
	}
	if !strings.HasSuffix(parts[3], "-intro.mp4") {
		t.Errorf("filename segment = %q", parts[3])
	}
	// The timestamp token must not reintroduce separators that break the
	// key layout.
	stamp := strings.TrimSuffix(parts[3], "-intro.mp4")
	if strings.ContainsAny(stamp, "-:.") {
		t.Errorf("timestamp token %q contains separators", stamp)
	}
}

func TestObjectKeyUnknownContentType(t *testing.T) {
	key := ObjectKey(uuid.New(), uuid.New(), "", "blob")
	if !strings.Contains(key, "/bin/") {
		t.Errorf("key = %q, want bin kind for unknown content type", key)
	}
}

func TestKeyFromURLRoundTrip(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	url := srv.URL + "/course-media/a/b/png/x.png"
	if got := client.KeyFromURL(url); got != "a/b/png/x.png" {
		t.Errorf("key = %q", got)
	}
	if got := client.KeyFromURL("https://elsewhere.example/other/key"); got != "" {
		t.Errorf("foreign URL yielded key %q", got)
	}
	if got := client.KeyFromURL(""); got != "" {
		t.Errorf("empty URL yielded key %q", got)
	}
}
