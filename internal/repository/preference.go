package repository

import (
	"context"
	"errors"
	"time"

	"bytebazaar-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository stores per-user UI preferences (currently the theme
// choice) locally, the localStorage analog.
type PreferenceRepository interface {
	Set(ctx context.Context, userID, name, value string) error
	Get(ctx context.Context, userID, name string) (string, error)
}

type preferenceRepoImpl struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepoImpl{
		db: db,
	}
}

func (r *preferenceRepoImpl) Set(ctx context.Context, userID, name, value string) error {
	pref := &model.Preference{
		UserID: userID,
		Name:   name,
		Value:  value,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(pref).Error
}

func (r *preferenceRepoImpl) Get(ctx context.Context, userID, name string) (string, error) {
	var pref model.Preference
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&pref).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	return pref.Value, nil
}
