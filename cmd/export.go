/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/plategate/apiserver/config"
	"github.com/plategate/apiserver/internal/db"
	"github.com/plategate/apiserver/internal/logger"
	"github.com/plategate/apiserver/internal/services"
	"github.com/plategate/apiserver/internal/storage"
	"github.com/plategate/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// exportCmd runs a single CSV export cycle and exits. Useful for backfills
// and for verifying storage credentials without starting the server.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the license-plate table to object storage once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logger.New(cfg.Environment)
		ctx := cmd.Context()

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbConn.Close()

		var objectStore *storage.Storage
		switch cfg.Storage.Backend {
		case config.StorageBackendGCS:
			client, err := storage.NewGCSClient(ctx, cfg.Storage.GCS)
			if err != nil {
				return err
			}
			objectStore = storage.NewStorage(client)
		default:
			client, err := storage.NewMinioClient(cfg.Storage.Minio)
			if err != nil {
				return err
			}
			objectStore = storage.NewStorage(client)
		}
		if err := objectStore.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("ensure bucket: %w", err)
		}

		exportService := services.NewExportService(
			store.NewPlateRepository(dbConn),
			objectStore,
			cfg.Export,
		)
		if err := exportService.Run(ctx); err != nil {
			return err
		}
		log.Info().Str("object", cfg.Export.ObjectName).Msg("export uploaded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
