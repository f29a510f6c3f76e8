package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitpromo/internal/models"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "  "})
	assert.Error(t, err)
}

func TestImageURL(t *testing.T) {
	c, err := New(Options{BaseURL: "http://api.test/"})
	require.NoError(t, err)
	assert.Equal(t, "http://api.test/files/out/1.png", c.ImageURL("out/1.png"))
	assert.Equal(t, "http://api.test/files/out/1.png", c.ImageURL("/out/1.png"))
}

func TestNon2xxReturnsHTTPError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":"target_ids required"}`)
	})

	_, err := c.ListTargets(context.Background())
	require.Error(t, err)
	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusUnprocessableEntity, herr.StatusCode)
	assert.Equal(t, `API error 422: {"detail":"target_ids required"}`, err.Error())
	assert.False(t, IsNotFound(err))
}

func TestTransportFailureIsWrapped(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.GetGeneration(context.Background(), 1)
	require.Error(t, err)
	var herr *HTTPError
	assert.False(t, errors.As(err, &herr))
	assert.Contains(t, err.Error(), "GET /generations/1")
}

func TestCreateGenerationPayload(t *testing.T) {
	var got map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/generations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"id":1,"status":"pending","mode":"derive","results":[],"created_at":"2025-03-01T10:00:00.123456"}`)
	})

	prompt := "spring launch"
	gen, err := c.CreateGeneration(context.Background(), models.GenerationCreate{
		TargetIDs:       []int64{5},
		PromotionPrompt: &prompt,
		DesignStyle:     string(models.DefaultDesignStyle),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen.ID)
	assert.Equal(t, models.GenerationPending, gen.Status)
	assert.Equal(t, 2025, gen.CreatedAt.Year())

	assert.Equal(t, []any{float64(5)}, got["target_ids"])
	assert.Equal(t, "spring launch", got["promotion_prompt"])
	assert.NotContains(t, got, "product_ids")
	assert.NotContains(t, got, "source_image_id")
}

func TestCreateGenerationRequiresTargets(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	_, err := c.CreateGeneration(context.Background(), models.GenerationCreate{})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestGetGenerationDecodesResults(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/generations/1", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":1,"status":"completed","results":[
			{"id":10,"generation_id":1,"target_id":5,"status":"completed","stored_path":"out/1.png",
			 "target":{"id":5,"key":"mz","name":"MZ","style_keywords":"not-json"}}]}`)
	})

	gen, err := c.GetGeneration(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, gen.Results, 1)
	assert.True(t, gen.IsFinished())
	assert.Equal(t, "out/1.png", *gen.Results[0].StoredPath)
	assert.Empty(t, gen.Results[0].Target.Keywords())
}

func TestTargetCRUD(t *testing.T) {
	var calls []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":1,"key":"k","name":"Teens","style_keywords":"[\"pop\"]"}]`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `"style_keywords":["a","b"]`)
			_, _ = io.WriteString(w, `{"id":2,"key":"k2","name":"Seniors"}`)
		}
	})
	ctx := context.Background()

	list, err := c.ListTargets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pop"}, list[0].Keywords())

	created, err := c.CreateTarget(ctx, models.TargetCreate{Key: "k2", Name: "Seniors", StyleKeywords: []string{"a", "b"}, PromptTemplate: "p"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	_, err = c.UpdateTarget(ctx, 2, models.TargetUpdate{StyleKeywords: []string{"a", "b"}})
	require.NoError(t, err)
	require.NoError(t, c.DeleteTarget(ctx, 2))

	assert.Equal(t, []string{"GET /api/v1/targets", "POST /api/v1/targets", "PUT /api/v1/targets/2", "DELETE /api/v1/targets/2"}, calls)
}

func TestProductCRUD(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":3,"name":"Serum","key_features":"[\"vitamin C\"]"}]`)
		case http.MethodDelete:
			assert.Equal(t, "/api/v1/products/3", r.URL.Path)
		default:
			_, _ = io.WriteString(w, `{"id":3,"name":"Serum 2"}`)
		}
	})
	ctx := context.Background()

	list, err := c.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"vitamin C"}, list[0].Features())

	p, err := c.CreateProduct(ctx, models.ProductInput{Name: "Serum 2"})
	require.NoError(t, err)
	assert.Empty(t, p.Features())

	_, err = c.UpdateProduct(ctx, 3, models.ProductInput{Name: "Serum 2"})
	require.NoError(t, err)
	assert.NoError(t, c.DeleteProduct(ctx, 3))
}

func TestUploadImageSendsMultipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/images/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "hero.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{"id":9,"filename":"hero.png","stored_path":"uploads/hero.png","mime_type":"image/png","size_bytes":2048,"created_at":"2025-03-01 10:00:00"}`)
	})

	img, err := c.UploadImage(context.Background(), "/tmp/hero.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, int64(9), img.ID)
	assert.Equal(t, int64(2), img.SizeKB())
}

func TestUploadImageRefusesNonImage(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.UploadImage(context.Background(), "notes.txt", strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = c.UploadImage(context.Background(), "empty.png", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
	assert.False(t, called)
}

func TestOversizedResponseIsReported(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"name":"`)
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxBodyBytes))
		_, _ = io.WriteString(w, `"}]`)
	})

	_, err := c.ListTargets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.NotContains(t, err.Error(), "decoding")
}
