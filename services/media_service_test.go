package services

import (
	"context"
	"testing"

	"abchotels/services/logger"
)

func TestCloudinaryAsset(t *testing.T) {
	tests := []struct {
		url          string
		resourceType string
		publicID     string
		ok           bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345/images/3f2a.jpg", "image", "images/3f2a", true},
		{"https://res.cloudinary.com/demo/image/upload/resumes/3f2a.pdf", "image", "resumes/3f2a", true},
		{"https://res.cloudinary.com/demo/raw/upload/v99/resumes/3f2a.docx", "raw", "resumes/3f2a.docx", true},
		{"https://res.cloudinary.com/demo/image/upload/v1712345", "", "", false},
		{"https://cdn.example.com/images/a.jpg", "", "", false},
		{"::not a url", "", "", false},
	}
	for _, tt := range tests {
		resourceType, publicID, ok := cloudinaryAsset(tt.url)
		if ok != tt.ok || resourceType != tt.resourceType || publicID != tt.publicID {
			t.Errorf("cloudinaryAsset(%q) = %q, %q, %v; want %q, %q, %v",
				tt.url, resourceType, publicID, ok, tt.resourceType, tt.publicID, tt.ok)
		}
	}
}

func TestS3StoreDeleteRejectsForeignURL(t *testing.T) {
	store, err := NewS3Store("http://localhost:9000", false, "key", "secret", "media", "", logger.Nop{})
	if err != nil {
		t.Fatalf("NewS3Store: %v", err)
	}
	if err := store.Delete(context.Background(), "https://elsewhere.example.com/media/resumes/a.pdf"); err == nil {
		t.Error("a URL outside the bucket must not be deleted")
	}
}

func TestNoopStoreDelete(t *testing.T) {
	if err := (NoopStore{}).Delete(context.Background(), "anything"); err != nil {
		t.Errorf("Delete = %v", err)
	}
}
