package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/models"
)

func TestCreateEntityAssignsSequentialIDs(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()

	first, err := svc.CreateEntity("Daw Khin", models.EntityTypeDonor, "Yangon", nil)
	require.NoError(t, err)
	assert.Equal(t, "D0001", first.CustomID)

	second, err := svc.CreateEntity("U Aung", models.EntityTypeDonor, "Mandalay", nil)
	require.NoError(t, err)
	assert.Equal(t, "D0002", second.CustomID)

	// recipients have their own sequence
	recipient, err := svc.CreateEntity("Village School", models.EntityTypeRecipient, "Bago", nil)
	require.NoError(t, err)
	assert.Equal(t, "R0001", recipient.CustomID)
}

func TestCreateEntityRecoversFromMalformedPreviousID(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, config.DB.Create(&models.Entity{
		CustomID: "DXXXX", Name: "Broken", Type: models.EntityTypeDonor,
	}).Error)

	entity, err := NewEntityService().CreateEntity("Fresh Donor", models.EntityTypeDonor, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "D0001", entity.CustomID)
}

func TestCreateEntityDetectsDuplicateID(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()

	// D0001 exists, but the lexically greatest donor id is malformed, so the
	// allocator keeps computing D0001 and the unique index keeps rejecting it
	require.NoError(t, config.DB.Create(&models.Entity{
		CustomID: "D0001", Name: "First", Type: models.EntityTypeDonor,
	}).Error)
	require.NoError(t, config.DB.Create(&models.Entity{
		CustomID: "DXXXX", Name: "Broken", Type: models.EntityTypeDonor,
	}).Error)

	_, err := svc.CreateEntity("Donor", models.EntityTypeDonor, "", nil)
	assert.ErrorIs(t, err, ErrAllocationRetry)

	// no duplicate row was inserted
	var count int64
	config.DB.Model(&models.Entity{}).Where("custom_id = ?", "D0001").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateEntityAfterTypeEdit(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()

	_, err := svc.CreateEntity("Village School", models.EntityTypeRecipient, "Bago", nil)
	require.NoError(t, err)
	second, err := svc.CreateEntity("Clinic", models.EntityTypeRecipient, "Bago", nil)
	require.NoError(t, err)
	assert.Equal(t, "R0002", second.CustomID)

	// a donor re-typed as recipient keeps its D id; its row must not feed the
	// recipient sequence
	donor, err := svc.CreateEntity("Daw Khin", models.EntityTypeDonor, "Yangon", nil)
	require.NoError(t, err)
	retyped, err := svc.UpdateEntity(donor.ID, donor.Name, models.EntityTypeRecipient, donor.Location, nil)
	require.NoError(t, err)
	assert.Equal(t, "D0001", retyped.CustomID)

	next, err := svc.CreateEntity("Orphanage", models.EntityTypeRecipient, "Mandalay", nil)
	require.NoError(t, err)
	assert.Equal(t, "R0003", next.CustomID)

	// the donor sequence still continues past the re-typed row's id
	nextDonor, err := svc.CreateEntity("U Aung", models.EntityTypeDonor, "Mandalay", nil)
	require.NoError(t, err)
	assert.Equal(t, "D0002", nextDonor.CustomID)
}

func TestCreateEntityRejectsBadType(t *testing.T) {
	setupTestDB(t)
	_, err := NewEntityService().CreateEntity("X", models.EntityType("sponsor"), "", nil)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestUpdateEntityKeepsCustomID(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()
	entity := seedEntity(t, models.EntityTypeDonor, "Old Name")

	updated, err := svc.UpdateEntity(entity.ID, "New Name", models.EntityTypeDonor, "Naypyidaw", nil)
	require.NoError(t, err)
	assert.Equal(t, entity.CustomID, updated.CustomID)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "Naypyidaw", updated.Location)
}

func TestUpdateEntityRefusesSoftDeleted(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()
	entity := seedEntity(t, models.EntityTypeDonor, "Donor")
	require.NoError(t, svc.SoftDeleteEntity(entity.ID, nil))

	_, err := svc.UpdateEntity(entity.ID, "Renamed", models.EntityTypeDonor, "", nil)
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestSoftDeleteEntityKeepsRow(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()
	entity := seedEntity(t, models.EntityTypeDonor, "Donor")

	require.NoError(t, svc.SoftDeleteEntity(entity.ID, nil))

	var row models.Entity
	require.NoError(t, config.DB.First(&row, entity.ID).Error)
	assert.True(t, row.IsDeleted)

	// excluded from the default list
	entities, total, err := svc.ListEntities(1, 25)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entities)
}

func TestHardDeleteEntityProtectedByTransactions(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()
	entity := seedEntity(t, models.EntityTypeDonor, "Donor")
	currency := seedCurrency(t, "MMK")
	seedTransaction(t, entity, currency, "100.00", "1")

	err := svc.HardDeleteEntity(entity.ID, nil)
	assert.ErrorIs(t, err, ErrEntityHasTx)

	var count int64
	config.DB.Model(&models.Entity{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestHardDeleteEntityRemovesRow(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()
	entity := seedEntity(t, models.EntityTypeDonor, "Donor")

	require.NoError(t, svc.HardDeleteEntity(entity.ID, nil))

	var count int64
	config.DB.Model(&models.Entity{}).Count(&count)
	assert.Zero(t, count)
	assert.EqualValues(t, 1, auditCount(t, models.ObjectTypeEntity, entity.ID, models.AuditActionDelete))
}

func TestEntityAuditTrail(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()
	actor := uint(7)

	entity, err := svc.CreateEntity("Donor", models.EntityTypeDonor, "Yangon", &actor)
	require.NoError(t, err)
	assert.EqualValues(t, 1, auditCount(t, models.ObjectTypeEntity, entity.ID, models.AuditActionCreate))

	_, err = svc.UpdateEntity(entity.ID, "Renamed", models.EntityTypeDonor, "Yangon", &actor)
	require.NoError(t, err)
	assert.EqualValues(t, 1, auditCount(t, models.ObjectTypeEntity, entity.ID, models.AuditActionUpdate))

	// the update diff names only the changed field
	var entry models.AuditLog
	require.NoError(t, config.DB.Where("object_type = ? AND action = ?", models.ObjectTypeEntity, models.AuditActionUpdate).First(&entry).Error)
	changes := entry.ChangeSet()
	assert.Contains(t, changes, "name")
	assert.NotContains(t, changes, "location")

	require.NoError(t, svc.SoftDeleteEntity(entity.ID, &actor))
	assert.EqualValues(t, 1, auditCount(t, models.ObjectTypeEntity, entity.ID, models.AuditActionSoftDelete))
}

func TestAutocomplete(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()
	donor := seedEntity(t, models.EntityTypeDonor, "Golden Valley Trust")
	seedEntity(t, models.EntityTypeRecipient, "Golden School")

	results, err := svc.Autocomplete("golden", "donor")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, donor.ID, results[0].ID)
	assert.Equal(t, "D0001 · Golden Valley Trust · Donor", results[0].Text)

	// custom id matches too
	results, err = svc.Autocomplete("d0001", "")
	require.NoError(t, err)
	require.Len(t, results, 1)

	// soft-deleted entities disappear
	require.NoError(t, svc.SoftDeleteEntity(donor.ID, nil))
	results, err = svc.Autocomplete("golden", "donor")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAutocompleteCapsAtTwenty(t *testing.T) {
	setupTestDB(t)
	svc := NewEntityService()
	for i := 0; i < 25; i++ {
		seedEntity(t, models.EntityTypeDonor, "Bulk Donor")
	}

	results, err := svc.Autocomplete("bulk", "")
	require.NoError(t, err)
	assert.Len(t, results, 20)
	// ordered by custom id
	assert.Equal(t, "D0001 · Bulk Donor · Donor", results[0].Text)
}
