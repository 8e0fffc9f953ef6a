package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
)

// CreateTableSQL is applied by cmd/tools/createtable.
const CreateTableSQL = `
CREATE TABLE IF NOT EXISTS storefront_sessions (
  id CHAR(36) NOT NULL,
  token TEXT NULL,
  user_json JSON NULL,
  ui_json JSON NULL,
  expires_at DATETIME(3) NOT NULL,
  created_at DATETIME(3) NOT NULL,
  updated_at DATETIME(3) NOT NULL,
  PRIMARY KEY (id),
  KEY ix_storefront_sessions_expires_at (expires_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`

// Row is one storefront_sessions record: the token and the serialized user
// profile in separate columns.
type Row struct {
	ID        string         `gorm:"primaryKey;type:char(36)"`
	Token     string         `gorm:"type:text"`
	UserJSON  datatypes.JSON `gorm:"column:user_json"`
	UIJSON    datatypes.JSON `gorm:"column:ui_json"`
	ExpiresAt time.Time      `gorm:"type:datetime(3);not null;index:ix_storefront_sessions_expires_at"`
	CreatedAt time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time      `gorm:"type:datetime(3);not null"`
}

func (Row) TableName() string { return "storefront_sessions" }

type GormStorage struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db, now: time.Now}
}

func (s *GormStorage) Get(ctx context.Context, id string) (Record, error) {
	var row Row
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, s.now()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}

	rec := Record{Token: row.Token}
	if len(row.UserJSON) > 0 && string(row.UserJSON) != "null" {
		var u backend.User
		if err := json.Unmarshal(row.UserJSON, &u); err != nil {
			return Record{}, err
		}
		rec.User = &u
	}
	if len(row.UIJSON) > 0 {
		if err := json.Unmarshal(row.UIJSON, &rec.UI); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

func (s *GormStorage) Put(ctx context.Context, id string, r Record, ttl time.Duration) error {
	userJSON, err := json.Marshal(r.User)
	if err != nil {
		return err
	}
	uiJSON, err := json.Marshal(r.UI)
	if err != nil {
		return err
	}
	now := s.now()
	row := Row{
		ID:        id,
		Token:     r.Token,
		UserJSON:  datatypes.JSON(userJSON),
		UIJSON:    datatypes.JSON(uiJSON),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Save upserts on primary key
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *GormStorage) SaveUI(ctx context.Context, id string, ui UIState) error {
	uiJSON, err := json.Marshal(ui)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Model(&Row{}).
		Where("id = ? AND expires_at > ?", id, s.now()).
		Updates(map[string]any{
			"ui_json":    datatypes.JSON(uiJSON),
			"updated_at": s.now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&Row{}, "id = ?", id).Error
}

// PurgeExpired removes rows past their expiry; run from a ticker.
func (s *GormStorage) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&Row{})
	return res.RowsAffected, res.Error
}
