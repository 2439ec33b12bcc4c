package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// sniffLength is how much of a file http.DetectContentType looks at
const sniffLength = 512

// AllowedImageTypes are the photo formats accepted for upload
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateImageUpload checks size, declared type and the file's leading bytes.
// The declared Content-Type must agree with what the content sniffs as, so a
// renamed document cannot be stored as a photo.
func ValidateImageUpload(fileHeader *multipart.FileHeader, maxSize int64) error {
	if fileHeader.Size > maxSize {
		return fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidInput, maxSize)
	}

	declared := contentTypeOf(fileHeader)
	if !AllowedImageTypes[declared] {
		return fmt.Errorf("%w: only JPEG, PNG and WebP images are accepted", ErrInvalidInput)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, sniffLength)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file content: %w", err)
	}

	if sniffed := http.DetectContentType(buffer[:n]); sniffed != declared {
		return fmt.Errorf("%w: file content is not a valid %s image", ErrInvalidInput, declared)
	}
	return nil
}
