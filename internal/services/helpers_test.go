package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hela9_backend/internal/metrics"
	"hela9_backend/internal/services/dto"
	"hela9_backend/internal/testutil"
)

// recordedEvents - EventPublisher, запоминающий события.
type recordedEvents struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordedEvents) Publish(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordedEvents) ofType(eventType string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	db      *gorm.DB
	mailer  *testutil.FakeMailer
	storage *testutil.MemoryStorage
	events  *recordedEvents
	svc     *ServiceContainer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:      testutil.NewTestDB(t),
		mailer:  &testutil.FakeMailer{},
		storage: testutil.NewMemoryStorage(),
		events:  &recordedEvents{},
	}
	f.svc = NewServiceContainer(Dependencies{
		Storage:     f.storage,
		Mailer:      f.mailer,
		AppName:     "7ela9",
		Events:      f.events,
		Metrics:     metrics.New(),
		MaxFileSize: 1 << 20,
		AvatarSize:  64,
	})
	return f
}

// setNow фиксирует часы сервисов, которые зависят от времени.
func (f *fixture) setNow(now time.Time) {
	clock := func() time.Time { return now }
	f.svc.AuthService.(*authService).now = clock
	f.svc.StylistService.(*stylistService).now = clock
	f.svc.DashboardService.(*dashboardService).now = clock
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageFile(t *testing.T, name string) *dto.FileInput {
	t.Helper()
	data := pngBytes(t, 8, 8)
	return &dto.FileInput{Filename: name, Size: int64(len(data)), Content: bytes.NewReader(data)}
}

var ctx = context.Background()
