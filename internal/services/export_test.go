package services

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plategate/apiserver/config"
	"github.com/plategate/apiserver/internal/storage"
	"github.com/plategate/apiserver/types"
)

type memoryBackend struct {
	objects      map[string][]byte
	contentTypes map[string]string
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (b *memoryBackend) EnsureBucket(context.Context) error { return nil }

func (b *memoryBackend) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[key] = data
	b.contentTypes[key] = contentType
	return nil
}

func (b *memoryBackend) Get(_ context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.objects[key])), nil
}

func (b *memoryBackend) Delete(_ context.Context, key string) error {
	delete(b.objects, key)
	return nil
}

func (b *memoryBackend) Bucket() string { return "test-bucket" }

type staticLister struct {
	plates []types.LicensePlate
}

func (l staticLister) List(context.Context) ([]types.LicensePlate, error) {
	return l.plates, nil
}

func TestExportRunUploadsCSV(t *testing.T) {
	backend := newMemoryBackend()
	scratchDir := t.TempDir()
	lister := staticLister{plates: []types.LicensePlate{
		{ID: 1, FirstName: "John", LastName: "Doe", LicenseNumber: "ABC123", ProvinceID: 1},
		{ID: 2, FirstName: "สมชาย", LastName: "ใจดี", LicenseNumber: "กข1234", ProvinceID: 5},
	}}
	svc := NewExportService(lister, storage.NewStorage(backend), config.ExportConfig{
		ObjectName: "license_plate_data.csv",
		ScratchDir: scratchDir,
	})

	require.NoError(t, svc.Run(context.Background()))

	data, ok := backend.objects["license_plate_data.csv"]
	require.True(t, ok)
	assert.Equal(t, "text/csv", backend.contentTypes["license_plate_data.csv"])

	want := "first_name,last_name,license_number,province_id,id\n" +
		"John,Doe,ABC123,1,1\n" +
		"สมชาย,ใจดี,กข1234,5,2\n"
	assert.Equal(t, want, string(data))

	// The scratch file is removed after the upload.
	assert.NoFileExists(t, filepath.Join(scratchDir, "license_plate_data.csv"))
}

func TestExportRunHeaderOnlyWhenEmpty(t *testing.T) {
	backend := newMemoryBackend()
	svc := NewExportService(staticLister{}, storage.NewStorage(backend), config.ExportConfig{
		ObjectName: "license_plate_data.csv",
		ScratchDir: t.TempDir(),
	})

	require.NoError(t, svc.Run(context.Background()))
	assert.Equal(t, "first_name,last_name,license_number,province_id,id\n",
		string(backend.objects["license_plate_data.csv"]))
}

func TestExportRunOverwritesPriorUpload(t *testing.T) {
	backend := newMemoryBackend()
	backend.objects["license_plate_data.csv"] = []byte("stale")
	svc := NewExportService(staticLister{plates: []types.LicensePlate{
		{ID: 1, FirstName: "John", LastName: "Doe", LicenseNumber: "ABC123", ProvinceID: 1},
	}}, storage.NewStorage(backend), config.ExportConfig{
		ObjectName: "license_plate_data.csv",
		ScratchDir: t.TempDir(),
	})

	require.NoError(t, svc.Run(context.Background()))
	assert.NotEqual(t, "stale", string(backend.objects["license_plate_data.csv"]))
}
