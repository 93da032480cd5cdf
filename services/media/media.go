// Package media persists inline image payloads as static assets. Only the
// resulting URL and its metadata are stored with the hostel; files live
// under MEDIA_DIR and are served by the static route.
package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const urlPrefix = "/media/"

// Dir returns the media directory, defaulting to ./media.
func Dir() string {
	if dir := os.Getenv("MEDIA_DIR"); dir != "" {
		return dir
	}
	return "media"
}

// SaveDataURI decodes a data:image/...;base64 payload, writes it under the
// media directory and returns the public URL.
func SaveDataURI(dataURI string, index int) (string, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", fmt.Errorf("not a data URI")
	}
	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("malformed data URI")
	}
	header, payload := parts[0], parts[1]

	imageBytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	ext := "jpg"
	if strings.Contains(header, "png") {
		ext = "png"
	}
	filename := fmt.Sprintf("hostel_%d_%d.%s", time.Now().UnixNano(), index, ext)

	dir := filepath.Join(Dir(), "hostel_images")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), imageBytes, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return urlPrefix + "hostel_images/" + filename, nil
}
