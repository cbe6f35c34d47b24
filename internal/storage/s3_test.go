package storage

import (
	"alcyxob/fitness-market/internal/config"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"", true, ""},
		{"localhost:9000", false, "http://localhost:9000"},
		{"s3.example.com", true, "https://s3.example.com"},
		{"http://minio:9000", true, "http://minio:9000"},
	}
	for _, tt := range tests {
		if got := endpointURL(tt.endpoint, tt.useSSL); got != tt.want {
			t.Errorf("endpointURL(%q, %v) = %q, want %q", tt.endpoint, tt.useSSL, got, tt.want)
		}
	}
}

// Presigning is local signing; no request reaches the endpoint.
func TestPresignedUploadURL(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "fitmarket",
	})
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}

	raw, err := fs.GeneratePresignedUploadURL(context.Background(), "trainers/abc/photo.png", "image/png", time.Minute)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	if u.Host != "localhost:9000" {
		t.Errorf("host = %q, want localhost:9000", u.Host)
	}
	if !strings.HasPrefix(u.Path, "/fitmarket/trainers/abc/photo.png") {
		t.Errorf("path = %q, want path-style bucket/key", u.Path)
	}
	if u.Query().Get("X-Amz-Expires") != "60" {
		t.Errorf("X-Amz-Expires = %q, want 60", u.Query().Get("X-Amz-Expires"))
	}
}
