package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/craftedu/coursecraft-backend/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUpload is returned when the object store is unreachable or rejects a
// write. Callers treat it as fatal for the enclosing operation.
var ErrUpload = errors.New("object store upload failed")

// Client talks to the external object store over its HTTP API. Objects are
// written to {base}/{bucket}/{key} and served back from the same URL.
type Client struct {
	http   *resty.Client
	bucket string
	log    zerolog.Logger
}

// NewClient creates an object store client from configuration.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.ObjectStoreURL, "/")).
		SetTimeout(60 * time.Second).
		SetRetryCount(2)

	if cfg.ObjectStoreToken != "" {
		httpClient.SetAuthToken(cfg.ObjectStoreToken)
	}

	return &Client{
		http:   httpClient,
		bucket: cfg.ObjectStoreBucket,
		log:    log.With().Str("component", "object_store").Logger(),
	}
}

// Upload writes the buffer under key and returns the public URL. The write
// must complete before the caller persists anything referencing the URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Put("/" + c.bucket + "/" + key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d", ErrUpload, resp.StatusCode())
	}

	url := c.http.BaseURL + "/" + c.bucket + "/" + key
	c.log.Debug().Str("key", key).Int("bytes", len(data)).Msg("Object uploaded")
	return url, nil
}

// Delete removes an object. A missing object is not an error; the janitor
// retries blindly.
func (c *Client) Delete(ctx context.Context, key string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/" + c.bucket + "/" + key)
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	if resp.IsError() && resp.StatusCode() != 404 {
		return fmt.Errorf("delete object: status %d", resp.StatusCode())
	}
	return nil
}

// ObjectKey builds the storage key for an uploaded resource binary:
// {courseId}/{lessonId}/{mimeSubtype}/{timestamp}-{originalFilename}.
// The timestamp prefix keeps concurrent uploads of the same filename to the
// same lesson from colliding.
func ObjectKey(courseID, lessonID uuid.UUID, contentType, filename string) string {
	kind := "bin"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
		kind = parts[1]
	}
	return fmt.Sprintf("%s/%s/%s/%s-%s",
		courseID, lessonID, kind, timestampToken(time.Now()), filename)
}

// KeyFromURL recovers the object key from a stored URL, for cleanup.
// Returns "" if the URL does not belong to this store/bucket.
func (c *Client) KeyFromURL(url string) string {
	prefix := c.http.BaseURL + "/" + c.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

// timestampToken is an RFC3339Nano timestamp stripped of '-', ':' and '.'
// so it is safe inside a key segment.
func timestampToken(t time.Time) string {
	return strings.NewReplacer("-", "", ":", "", ".", "").
		Replace(t.UTC().Format(time.RFC3339Nano))
}
