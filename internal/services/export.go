package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/plategate/apiserver/config"
	"github.com/plategate/apiserver/internal/storage"
	"github.com/plategate/apiserver/types"
)

const exportContentType = "text/csv"

// csvHeader matches the plate's own column declaration order.
var csvHeader = []string{"first_name", "last_name", "license_number", "province_id", "id"}

// PlateLister is the read operation the export needs.
type PlateLister interface {
	List(ctx context.Context) ([]types.LicensePlate, error)
}

// ExportService snapshots the license-plate table to a CSV file and
// uploads it to object storage under a fixed destination name,
// overwriting any prior upload.
type ExportService struct {
	plates     PlateLister
	storage    *storage.Storage
	objectName string
	scratchDir string
}

func NewExportService(plates PlateLister, store *storage.Storage, cfg config.ExportConfig) *ExportService {
	return &ExportService{
		plates:     plates,
		storage:    store,
		objectName: cfg.ObjectName,
		scratchDir: cfg.ScratchDir,
	}
}

// Run performs one export cycle: query all plates, serialize to a scratch
// file, upload the file, remove the scratch file.
func (s *ExportService) Run(ctx context.Context) error {
	plates, err := s.plates.List(ctx)
	if err != nil {
		return fmt.Errorf("query plates: %w", err)
	}

	scratchPath := filepath.Join(s.scratchDir, s.objectName)
	if err := writeCSV(scratchPath, plates); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	defer os.Remove(scratchPath)

	file, err := os.Open(scratchPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat csv: %w", err)
	}

	if err := s.storage.Put(ctx, s.objectName, file, info.Size(), exportContentType); err != nil {
		return fmt.Errorf("upload csv: %w", err)
	}
	return nil
}

// ObjectName returns the fixed destination name of the export.
func (s *ExportService) ObjectName() string {
	return s.objectName
}

func writeCSV(path string, plates []types.LicensePlate) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		_ = file.Close()
		return err
	}
	for _, plate := range plates {
		record := []string{
			plate.FirstName,
			plate.LastName,
			plate.LicenseNumber,
			strconv.Itoa(plate.ProvinceID),
			strconv.Itoa(plate.ID),
		}
		if err := writer.Write(record); err != nil {
			_ = file.Close()
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
