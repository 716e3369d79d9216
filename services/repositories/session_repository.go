package repositories

import (
	"github.com/google/uuid"
	"github.com/pokedle-game/pokedle_api/model"
	"gorm.io/gorm"
)

// SessionRepository handles game session rows keyed by device.
type SessionRepository struct {
	BaseRepository
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (sr *SessionRepository) GetActiveByDeviceID(deviceID string) (*model.GameSession, error) {
	var session model.GameSession
	if err := sr.db.Where("device_id = ? AND is_completed = ?", deviceID, false).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (sr *SessionRepository) CreateSession(session *model.GameSession) (*model.GameSession, error) {
	id, _ := uuid.NewV7()
	session.ID = id.String()
	if err := sr.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (sr *SessionRepository) UpdateSession(tx *gorm.DB, session *model.GameSession) error {
	if tx == nil {
		tx = sr.db
	}
	return tx.Save(session).Error
}

// AbandonActive closes any active session for the device without scoring it
// as a played loss.
func (sr *SessionRepository) AbandonActive(deviceID string) error {
	return sr.db.Model(&model.GameSession{}).
		Where("device_id = ? AND is_completed = ?", deviceID, false).
		Updates(map[string]interface{}{
			"is_completed": true,
			"is_abandoned": true,
		}).Error
}

// SessionCounts aggregates per-device session totals for the stats endpoint.
type SessionCounts struct {
	Total     int64
	Completed int64
	Won       int64
	Active    int64
}

func (sr *SessionRepository) CountByDeviceID(deviceID string) (*SessionCounts, error) {
	var counts SessionCounts

	base := sr.db.Model(&model.GameSession{}).Where("device_id = ?", deviceID)

	if err := base.Session(&gorm.Session{}).Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	// Abandoned sessions are closed but never scored, so they stay out of
	// the completed denominator.
	if err := base.Session(&gorm.Session{}).
		Where("is_completed = ? AND is_abandoned = ?", true, false).
		Count(&counts.Completed).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("is_won = ?", true).
		Count(&counts.Won).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("is_completed = ?", false).
		Count(&counts.Active).Error; err != nil {
		return nil, err
	}

	return &counts, nil
}
