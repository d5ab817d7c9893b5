// Package imaging talks to the image hosting collaborator: direct binary
// upload under a named preset, and the pure public-ID derivation used by the
// server-side deletion call.
package imaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Uploader pushes image data to the hosting service and returns the
// retrievable URL.
type Uploader struct {
	host   string
	cloud  string
	preset string
	http   *http.Client
}

func NewUploader(host, cloud, preset string) *Uploader {
	return &Uploader{
		host:   strings.TrimRight(host, "/"),
		cloud:  cloud,
		preset: preset,
		http:   &http.Client{},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload sends the image bytes under the configured preset and returns the
// hosted URL.
func (u *Uploader) Upload(ctx context.Context, filename string, data io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, data); err != nil {
		return "", err
	}
	if err := mw.WriteField("upload_preset", u.preset); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", u.host, u.cloud)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("imaging: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("imaging: upload failed with status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("imaging: decode upload response: %w", err)
	}
	return out.SecureURL, nil
}

// PublicID derives the deletion identifier from a hosted image URL: the path
// segments after "upload", with the version segment skipped and the file
// extension stripped. Returns "" when the URL does not look like a hosted
// image. Pure string transform, no round trip.
func PublicID(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	parts := strings.Split(imageURL, "/")

	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx+2 >= len(parts) {
		return ""
	}

	// Skip "upload" and the version segment that follows it.
	relevant := strings.Join(parts[uploadIdx+2:], "/")
	return strings.SplitN(relevant, ".", 2)[0]
}
