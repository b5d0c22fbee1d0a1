package video

import (
	"fmt"
	"strings"

	"github.com/videotube/videos-ms-go/internal/model"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

const MinFileSize = 1024                    // 1 KB
const MaxFileSize = 2 * 1024 * 1024 * 1024 // 2 GB

// Originals are accepted by mime-type prefix rather than an exact list:
// browsers and upload tools disagree on container subtypes.
func IsMimeTypeAllowed(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/") || mimeType == "application/octet-stream"
}

// StagingKey is where a presigned upload lands before finalisation.
func StagingKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("staging/%s_%s", id, filename)
}

// OriginalKey is the durable location of a finalised original.
func OriginalKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("original/%s_%s", id, filename)
}

// TranscodedKey is where one published rung lives.
func TranscodedKey(id uuid.UUID, label model.ResolutionLabel) string {
	return fmt.Sprintf("transcoded/%s/%s.mp4", id, label)
}
