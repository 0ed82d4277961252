package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/plategate/apiserver/config"
	"github.com/plategate/apiserver/internal/auth"
	"github.com/rs/zerolog"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS provinces (
		id SERIAL PRIMARY KEY,
		province TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS license_plate (
		id SERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		license_number TEXT NOT NULL,
		province_id INT NOT NULL REFERENCES provinces (id),
		UNIQUE (license_number, province_id)
	);`,
	`CREATE TABLE IF NOT EXISTS access_history (
		id SERIAL PRIMARY KEY,
		license_id INT NOT NULL REFERENCES license_plate (id),
		access_date TIMESTAMPTZ NOT NULL,
		access_type TEXT NOT NULL,
		image_source TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS license_plate_unknown (
		id SERIAL PRIMARY KEY,
		access_date TIMESTAMPTZ NOT NULL,
		license_number TEXT NOT NULL,
		image_source TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS detection_history (
		id SERIAL PRIMARY KEY,
		no_of_cars INT NOT NULL,
		no_of_empty INT NOT NULL,
		detection_date TIMESTAMPTZ NOT NULL,
		image_source TEXT NOT NULL
	);`,
}

// provinceSeed is the fixed Thai province reference list. It is inserted
// only when the provinces table is empty; a partial manual delete is not
// repaired by re-running the initializer.
var provinceSeed = []string{
	"กระบี่", "กรุงเทพมหานคร", "กาญจนบุรี", "กาฬสินธุ์", "กำแพงเพชร", "ขอนแก่น",
	"จันทบุรี", "ฉะเชิงเทรา", "ชลบุรี", "ชัยนาท", "ชัยภูมิ", "ชุมพร", "เชียงราย", "เชียงใหม่",
	"ตรัง", "ตราด", "ตาก", "นครนายก", "นครปฐม", "นครพนม",
	"นครราชสีมา", "นครศรีธรรมราช", "นครสวรรค์", "นนทบุรี", "นราธิวาส", "น่าน", "บึงกาฬ",
	"บุรีรัมย์", "ปทุมธานี", "ประจวบคีรีขันธ์", "ปราจีนบุรี", "ปัตตานี", "พระนครศรีอยุธยา", "พะเยา",
	"พังงา", "พัทลุง", "พิจิตร", "พิษณุโลก", "เพชรบุรี", "เพชรบูรณ์", "แพร่",
	"ภูเก็ต", "มหาสารคาม", "มุกดาหาร", "แม่ฮ่องสอน", "ยโสธร", "ยะลา", "ร้อยเอ็ด", "ระนอง",
	"ระยอง", "ราชบุรี", "ลพบุรี", "ลำปาง", "ลำพูน", "เลย", "ศรีสะเกษ", "สกลนคร",
	"สงขลา", "สตูล", "สมุทรปราการ", "สมุทรสงคราม", "สมุทรสาคร", "สระแก้ว",
	"สระบุรี", "สิงห์บุรี", "สุโขทัย", "สุพรรณบุรี", "สุราษฎร์ธานี", "สุรินทร์", "หนองคาย", "หนองบัวลำภู",
	"อ่างทอง", "อำนาจเจริญ", "อุดรธานี", "อุตรดิตถ์", "อุทัยธานี", "อุบลราชธานี",
}

// EnsureSchema creates the tables if they are absent and seeds the admin
// user and the province reference list. Errors here are fatal to startup.
func EnsureSchema(ctx context.Context, db *sql.DB, cfg config.Config, logger zerolog.Logger) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}

	if err := seedAdminUser(ctx, db, cfg.Seed, logger); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	if err := seedProvinces(ctx, db, logger); err != nil {
		return fmt.Errorf("seed provinces: %w", err)
	}
	return nil
}

func seedAdminUser(ctx context.Context, db *sql.DB, seed config.SeedConfig, logger zerolog.Logger) error {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = $1`, seed.AdminUsername,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Debug().Str("username", seed.AdminUsername).Msg("admin user already exists")
		return nil
	}

	hash, err := auth.HashPassword(seed.AdminPassword)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)`,
		seed.AdminUsername, hash,
	)
	if err != nil {
		return err
	}
	logger.Info().Str("username", seed.AdminUsername).Msg("seeded admin user")
	return nil
}

func seedProvinces(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM provinces`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		logger.Debug().Int("count", count).Msg("provinces table already seeded")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, name := range provinceSeed {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO provinces (province) VALUES ($1)`, name,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Info().Int("count", len(provinceSeed)).Msg("seeded province list")
	return nil
}
