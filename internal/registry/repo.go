package registry

import (
	"crypto/sha256"
	"encoding/hex"

	"ouisvc/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// SaveSnapshot stores a full registry payload. Identical payloads (same
// checksum as the latest) are not stored twice.
func (r *Repo) SaveSnapshot(source string, payload []byte, records int) (*models.RegistrySnapshot, error) {
	sum := sha256.Sum256(payload)
	sha := hex.EncodeToString(sum[:])

	if last, err := r.Latest(); err == nil && last.SHA256 == sha {
		return last, nil
	}

	s := &models.RegistrySnapshot{
		UID:     uuid.NewString(),
		Source:  source,
		SHA256:  sha,
		Records: records,
		Payload: payload,
	}
	return s, r.db.Create(s).Error
}

// Latest returns the newest snapshot with payload.
func (r *Repo) Latest() (*models.RegistrySnapshot, error) {
	var s models.RegistrySnapshot
	if err := r.db.Order("id DESC").First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns snapshot metadata, newest first, without payloads.
func (r *Repo) List(limit int) ([]models.RegistrySnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []models.RegistrySnapshot
	err := r.db.
		Select("id", "created_at", "uid", "source", "sha256", "records").
		Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// Prune deletes all but the newest keep snapshots.
func (r *Repo) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	var ids []uint
	if err := r.db.Model(&models.RegistrySnapshot{}).
		Order("id DESC").Offset(keep).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return r.db.Delete(&models.RegistrySnapshot{}, ids).Error
}
