package export

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plategate/apiserver/config"
	"github.com/plategate/apiserver/internal/services"
	"github.com/plategate/apiserver/internal/storage"
	"github.com/plategate/apiserver/types"
)

type nullBackend struct {
	puts int
}

func (b *nullBackend) EnsureBucket(context.Context) error { return nil }

func (b *nullBackend) Put(_ context.Context, _ string, r io.Reader, _ int64, _ string) error {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return err
	}
	b.puts++
	return nil
}

func (b *nullBackend) Get(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (b *nullBackend) Delete(context.Context, string) error { return nil }

func (b *nullBackend) Bucket() string { return "test-bucket" }

// blockingLister parks List until released so a run can be held in flight.
type blockingLister struct {
	entered chan struct{}
	release chan struct{}
}

func (l *blockingLister) List(context.Context) ([]types.LicensePlate, error) {
	l.entered <- struct{}{}
	<-l.release
	return nil, nil
}

func newTestJob(lister services.PlateLister, backend storage.ObjectStorage, t *testing.T) *Job {
	t.Helper()
	svc := services.NewExportService(lister, storage.NewStorage(backend), config.ExportConfig{
		ObjectName: "license_plate_data.csv",
		ScratchDir: t.TempDir(),
	})
	return NewJob(svc, time.Minute, zerolog.Nop())
}

type staticLister struct{}

func (staticLister) List(context.Context) ([]types.LicensePlate, error) {
	return []types.LicensePlate{
		{ID: 1, FirstName: "John", LastName: "Doe", LicenseNumber: "ABC123", ProvinceID: 1},
	}, nil
}

func TestRunExecutesExport(t *testing.T) {
	backend := &nullBackend{}
	job := newTestJob(staticLister{}, backend, t)

	assert.True(t, job.Run(context.Background()))
	assert.Equal(t, 1, backend.puts)
}

func TestRunSkipsWhileInFlight(t *testing.T) {
	lister := &blockingLister{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	job := newTestJob(lister, &nullBackend{}, t)

	done := make(chan bool)
	go func() {
		done <- job.Run(context.Background())
	}()

	// Wait until the first run is inside the export before overlapping it.
	select {
	case <-lister.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first run never started")
	}

	assert.False(t, job.Run(context.Background()))

	close(lister.release)
	select {
	case executed := <-done:
		assert.True(t, executed)
	case <-time.After(5 * time.Second):
		t.Fatal("first run never finished")
	}

	// With the first run finished the job accepts work again.
	require.True(t, job.Run(context.Background()))
}
