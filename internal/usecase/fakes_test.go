package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"dawrni-api/internal/repository"
	"dawrni-api/internal/service"
	"dawrni-api/internal/testhelper"
)

var errUploadFailed = errors.New("upload failed")

// fakeStorage records uploads and deletions instead of talking to a CDN.
type fakeStorage struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	uploadErr error
}

func (s *fakeStorage) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	url := fmt.Sprintf("https://cdn.test/%s/%d.jpg", folder, len(s.uploads)+1)
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *fakeStorage) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	return nil
}

// fakeMailer keeps every message it is asked to send.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func newAuditService() service.AuditService {
	return service.NewAuditService(testhelper.NewLogger(), repository.NewAuditLogRepository())
}
