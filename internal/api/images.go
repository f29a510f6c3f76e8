package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"fitpromo/internal/models"
)

// MaxUploadBytes bounds what UploadImage will buffer and send.
const MaxUploadBytes = 20 << 20

// DetectImage sniffs data and returns its MIME type, or ErrNotImage when the
// content is not an image.
func DetectImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	return mt.String(), nil
}

// UploadImage posts a reference image as multipart field "file". Content is
// sniffed first and anything that is not an image is refused without a
// request being made.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.ImageFile, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}
	mimeType, err := DetectImage(data)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out models.ImageFile
	if err := c.do(ctx, http.MethodPost, "/images/upload", &body, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
