package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// CardImageService stores admin-uploaded card and branding images on disk.
// Files are served statically; the roster only ever holds the reference.
type CardImageService struct {
	storageDir string
}

func NewCardImageService() *CardImageService {
	storageDir := os.Getenv("CARD_IMAGES_DIR")
	if storageDir == "" {
		storageDir = "./data/card_images"
	}

	// Ensure the storage directory exists
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		fmt.Printf("Warning: could not create card images directory: %v\n", err)
	}

	return &CardImageService{storageDir: storageDir}
}

// SaveImage writes image data to disk and returns the generated filename.
func (s *CardImageService) SaveImage(imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	filename := uuid.New().String() + ".jpg"
	filePath := filepath.Join(s.storageDir, filename)

	if err := os.WriteFile(filePath, imageData, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return filename, nil
}

// GetStorageDir returns the storage directory path.
func (s *CardImageService) GetStorageDir() string {
	return s.storageDir
}
