package admin

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrUploadTooLarge = errors.New("admin: upload exceeds size limit")

// Upload is a file attached to the beat form.
type Upload struct {
	Name string
	// Type is the media type declared by the client, it may be empty.
	Type string
	Open func() (io.ReadCloser, error)
}

// MediaType returns the declared type or fallback.
func (u *Upload) MediaType(fallback string) string {
	if u == nil || strings.TrimSpace(u.Type) == "" {
		return fallback
	}
	return u.Type
}

// readDataURL embeds the upload as a data URL. Undeclared types are sniffed
// from the content.
func readDataURL(ctx context.Context, u *Upload, limit int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if u == nil || u.Open == nil {
		return "", errors.New("admin: no file")
	}
	rc, err := u.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: %s", ErrUploadTooLarge, u.Name)
	}

	mediaType := strings.TrimSpace(u.Type)
	if mediaType == "" {
		mediaType = mimetype.Detect(data).String()
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
