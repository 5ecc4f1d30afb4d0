package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"hela9_backend/internal/email"
)

// SentEmail - письмо, перехваченное FakeMailer.
type SentEmail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

// FakeMailer реализует email.Provider и запоминает отправленные письма.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []SentEmail
	Err  error
}

func (m *FakeMailer) Send(e *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentEmail{To: e.To, Subject: e.Subject})
	return nil
}

func (m *FakeMailer) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (m *FakeMailer) Validate() error { return nil }
func (m *FakeMailer) Close() error    { return nil }

// Last возвращает последнее письмо или nil.
func (m *FakeMailer) Last() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	last := m.Sent[len(m.Sent)-1]
	return &last
}

// LastCode - код из последнего письма.
func (m *FakeMailer) LastCode() string {
	last := m.Last()
	if last == nil {
		return ""
	}
	code, _ := last.Data["Code"].(string)
	return code
}

// MemoryStorage - storage.Storage в памяти.
type MemoryStorage struct {
	mu      sync.Mutex
	Files   map[string][]byte
	SaveErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Files: make(map[string][]byte)}
}

func (s *MemoryStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[path] = buf.Bytes()
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Files, path)
	return nil
}

func (s *MemoryStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "/static/uploads/" + path, nil
}

func (s *MemoryStorage) GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("/static/uploads/%s?expires=%d", path, int(expiry.Seconds())), nil
}

func (s *MemoryStorage) Has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Files[path]
	return ok
}

func (s *MemoryStorage) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Files)
}
