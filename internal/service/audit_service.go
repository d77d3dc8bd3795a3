package service

import (
	"context"

	"dawrni-api/internal/domain/entity"
	"dawrni-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit_logs rows inside the caller's transaction. A failed
// write is rolled back to a savepoint so the surrounding transaction stays usable.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error
}

const auditSavePoint = "audit_log"

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(ctx, tx, userID, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	auditLog := &entity.AuditLog{
		UserID: userID,
		Action: action,
		Metadata: entity.JSON{
			"entity":    entityName,
			"entity_id": entityID,
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	if err := tx.SavePoint(auditSavePoint).Error; err != nil {
		s.log.Warnf("Failed to create audit savepoint: %+v", err)
		return err
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		if rbErr := tx.RollbackTo(auditSavePoint).Error; rbErr != nil {
			s.log.Warnf("Failed to roll back audit savepoint: %+v", rbErr)
		}
		return err
	}

	return nil
}
