package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageContentTypes are the uploads accepted for item photos and profile images.
var ImageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func IsImage(contentType string) bool {
	_, ok := ImageContentTypes[strings.ToLower(contentType)]
	return ok
}

// objectName builds a unique public key such as public/items/<uuid>-20240101120000.jpg.
func objectName(folder, contentType string, now time.Time) string {
	folder = strings.Trim(folder, "/")
	if !strings.HasPrefix(folder, "public/") {
		folder = "public/" + folder
	}
	ext, ok := ImageContentTypes[strings.ToLower(contentType)]
	if !ok {
		ext = ".bin"
	}
	return fmt.Sprintf("%s/%s-%s%s", folder, uuid.New().String(), now.UTC().Format("20060102150405"), ext)
}
