package repository

import (
	"context"
	"errors"
	"time"

	"bytebazaar-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoSession is returned when no persisted session exists.
var ErrNoSession = errors.New("no persisted session")

// SessionRepository persists the current login across restarts, the way the
// original client kept it in browser session storage. At most one row lives
// here at a time.
type SessionRepository interface {
	Save(ctx context.Context, session *model.Session) error
	Current(ctx context.Context) (*model.Session, error)
	Delete(ctx context.Context) error
}

type sessionRepoImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepoImpl{
		db: db,
	}
}

func (r *sessionRepoImpl) Save(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// a new login replaces whatever session was stored before
		if err := tx.Where("user_id <> ?", session.UserID).Delete(&model.Session{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"token":      session.Token,
				"expires_at": session.ExpiresAt,
				"updated_at": time.Now(),
			}),
		}).Create(session).Error
	})
}

func (r *sessionRepoImpl) Current(ctx context.Context) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepoImpl) Delete(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Session{}).Error
}
