package models

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionDelete     AuditAction = "delete"
	AuditActionSoftDelete AuditAction = "soft_delete"
)

// Audited object types.
const (
	ObjectTypeEntity      = "entity"
	ObjectTypeTransaction = "transaction"
)

// AuditLog is an append-only record of a mutation. Rows are written in the same
// DB transaction as the change they describe and are never updated afterwards.
type AuditLog struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Action     AuditAction `json:"action" gorm:"size:20;not null"`
	UserID     *uint       `json:"user_id"`
	User       *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ObjectType string      `json:"object_type" gorm:"size:20;not null;index:idx_audit_object"`
	ObjectID   uint        `json:"object_id" gorm:"not null;index:idx_audit_object"`
	Changes    []byte      `json:"-" gorm:"type:jsonb"`
	CreatedAt  time.Time   `json:"created_at" gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// ChangeSet decodes the stored change JSON.
func (a *AuditLog) ChangeSet() map[string]interface{} {
	out := map[string]interface{}{}
	if len(a.Changes) > 0 {
		_ = json.Unmarshal(a.Changes, &out)
	}
	return out
}
