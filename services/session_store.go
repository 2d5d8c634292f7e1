package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/easybar-app/gateway/models"
)

// SessionStore keeps the durable per-user state the browser used to hold in
// localStorage: the scanned table number and tabs awaiting staff closure.
// Living here instead of the browser, it stays consistent across a user's
// devices.
type SessionStore struct {
	DB *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{DB: db}
}

// BindTable records the table a user scanned. Last write wins.
func (s *SessionStore) BindTable(userID string, tableNumber int) error {
	var binding models.TableBinding
	err := s.DB.Where("user_id = ?", userID).First(&binding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		binding = models.TableBinding{
			UserID:      userID,
			TableNumber: tableNumber,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		return s.DB.Create(&binding).Error
	}
	if err != nil {
		return err
	}

	binding.TableNumber = tableNumber
	binding.UpdatedAt = time.Now()
	return s.DB.Save(&binding).Error
}

// TableFor returns the bound table number, or false when the user never
// scanned one.
func (s *SessionStore) TableFor(userID string) (int, bool, error) {
	var binding models.TableBinding
	err := s.DB.Where("user_id = ?", userID).First(&binding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return binding.TableNumber, true, nil
}

func (s *SessionStore) ClearTable(userID string) error {
	return s.DB.Where("user_id = ?", userID).Delete(&models.TableBinding{}).Error
}

// MarkClosing flags a tab as awaiting staff closure. Repeated requests for
// the same tab return the existing record.
func (s *SessionStore) MarkClosing(tabID, userID string) (*models.ClosingRequest, error) {
	var existing models.ClosingRequest
	err := s.DB.Where("tab_id = ?", tabID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := models.ClosingRequest{
		ID:        uuid.NewString(),
		TabID:     tabID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *SessionStore) IsClosing(tabID string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.ClosingRequest{}).Where("tab_id = ?", tabID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SessionStore) ClearClosing(tabID string) error {
	return s.DB.Where("tab_id = ?", tabID).Delete(&models.ClosingRequest{}).Error
}

func (s *SessionStore) ListClosing() ([]models.ClosingRequest, error) {
	var requests []models.ClosingRequest
	if err := s.DB.Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
