package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"dawrni-api/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidImageURL = errors.New("not a cloudinary image url")

// CloudinaryStorage stores uploaded images on Cloudinary and returns their secure URLs.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
	log    *logrus.Logger
}

func NewCloudinaryStorage(cfg config.StorageConfig, log *logrus.Logger) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryStorage{
		cld:    cld,
		folder: cfg.Folder,
		log:    log,
	}, nil
}

// Upload stores file under <folder>/<subfolder> with a random public ID.
func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, subfolder string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: uuid.New().String(),
		Folder:   path.Join(s.folder, subfolder),
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Delete removes the image behind url. Missing images are not an error.
func (s *CloudinaryStorage) Delete(ctx context.Context, url string) error {
	publicID, err := publicIDFromURL(url)
	if err != nil {
		return err
	}

	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	if resp.Result != "ok" {
		s.log.Warnf("Cloudinary destroy of %s returned %q", publicID, resp.Result)
	}
	return nil
}

// publicIDFromURL extracts "folder/name" from
// https://res.cloudinary.com/<cloud>/image/upload/v123/folder/name.jpg.
func publicIDFromURL(url string) (string, error) {
	_, rest, found := strings.Cut(url, "/upload/")
	if !found || rest == "" {
		return "", ErrInvalidImageURL
	}

	segments := strings.Split(rest, "/")
	if len(segments) > 1 && isVersionSegment(segments[0]) {
		segments = segments[1:]
	}

	publicID := strings.Join(segments, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" {
		return "", ErrInvalidImageURL
	}
	return publicID, nil
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
