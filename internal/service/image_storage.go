package service

import (
	"context"
	"io"
)

// ImageStorage persists uploaded images and addresses them by public URL.
type ImageStorage interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}

// Upload folders.
const (
	FolderCompanies     = "companies"
	FolderCompanyPhotos = "company_photos"
	FolderClients       = "clients"
)
