package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/models"
)

func TestFieldChanges(t *testing.T) {
	old := map[string]interface{}{
		"name":     "Old Name",
		"location": "Yangon",
		"amount":   "100.00",
	}
	updated := map[string]interface{}{
		"name":     "New Name",
		"location": "Yangon",
		"amount":   "100.00",
	}

	changes := FieldChanges(old, updated)
	require.Len(t, changes, 1)
	assert.Equal(t, []interface{}{"Old Name", "New Name"}, changes["name"])
}

func TestFieldChangesHandlesNilValues(t *testing.T) {
	old := map[string]interface{}{"purpose_id": nil}
	updated := map[string]interface{}{"purpose_id": uint(3)}

	changes := FieldChanges(old, updated)
	require.Len(t, changes, 1)

	// no change when both sides are nil
	changes = FieldChanges(map[string]interface{}{"purpose_id": nil}, map[string]interface{}{"purpose_id": nil})
	assert.Empty(t, changes)
}

func TestRecordStoresActorAndChangeSet(t *testing.T) {
	setupTestDB(t)
	actor := uint(42)

	err := NewAuditService().Record(config.DB, models.AuditActionUpdate, &actor,
		models.ObjectTypeEntity, 7, map[string]interface{}{"name": []interface{}{"a", "b"}})
	require.NoError(t, err)

	var entry models.AuditLog
	require.NoError(t, config.DB.First(&entry).Error)
	assert.Equal(t, models.AuditActionUpdate, entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, actor, *entry.UserID)
	assert.Equal(t, "entity", entry.ObjectType)
	assert.EqualValues(t, 7, entry.ObjectID)
	assert.Equal(t, map[string]interface{}{"name": []interface{}{"a", "b"}}, entry.ChangeSet())
}

func TestListAuditLogsFilters(t *testing.T) {
	setupTestDB(t)
	svc := NewAuditService()

	require.NoError(t, svc.Record(config.DB, models.AuditActionCreate, nil, models.ObjectTypeEntity, 1, nil))
	require.NoError(t, svc.Record(config.DB, models.AuditActionCreate, nil, models.ObjectTypeTransaction, 1, nil))
	require.NoError(t, svc.Record(config.DB, models.AuditActionSoftDelete, nil, models.ObjectTypeTransaction, 1, nil))

	logs, total, err := svc.ListAuditLogs(models.ObjectTypeTransaction, 0, "", 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, logs, 2)

	logs, total, err = svc.ListAuditLogs("", 0, string(models.AuditActionSoftDelete), 1, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, models.AuditActionSoftDelete, logs[0].Action)
}
