package services

import (
	"errors"
	"fmt"

	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/models"
	"gorm.io/gorm"
)

var (
	ErrEntityNotFound  = errors.New("entity not found")
	ErrEntityHasTx     = errors.New("entity still has transactions and cannot be removed")
	ErrInvalidType     = errors.New("entity type must be donor or recipient")
	ErrAllocationRetry = errors.New("could not allocate a unique entity id, please retry")
)

const customIDAttempts = 5

type EntityService struct {
	auditService *AuditService
}

func NewEntityService() *EntityService {
	return &EntityService{auditService: NewAuditService()}
}

// CreateEntity allocates the next sequential custom id for the type and inserts
// the entity. Allocation reads the current max sequence and relies on the
// unique index to catch concurrent writers: on a duplicate-key error the whole
// insert is retried with a fresh read, up to customIDAttempts times.
func (s *EntityService) CreateEntity(name string, entityType models.EntityType, location string, actorID *uint) (*models.Entity, error) {
	if !entityType.Valid() {
		return nil, ErrInvalidType
	}

	var entity *models.Entity
	for attempt := 0; attempt < customIDAttempts; attempt++ {
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			seq, err := s.nextSequence(tx, entityType)
			if err != nil {
				return err
			}

			e := models.Entity{
				CustomID: models.FormatCustomID(entityType, seq),
				Name:     name,
				Type:     entityType,
				Location: location,
			}
			if err := tx.Create(&e).Error; err != nil {
				return err
			}
			if err := s.auditService.Record(tx, models.AuditActionCreate, actorID,
				models.ObjectTypeEntity, e.ID, map[string]interface{}{"created": true}); err != nil {
				return err
			}
			entity = &e
			return nil
		})
		if err == nil {
			return entity, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}
	return nil, ErrAllocationRetry
}

// nextSequence returns the max sequence among ids carrying the type's prefix,
// plus one. Matching on the id prefix rather than the type column keeps
// allocation working when an entity has changed type and kept its original id:
// the stale-prefix row simply belongs to the other sequence. Zero-padded ids
// sort lexically, so the greatest custom_id carries the greatest sequence. A
// malformed id parses to 0 and so falls back to 1.
func (s *EntityService) nextSequence(tx *gorm.DB, entityType models.EntityType) (int, error) {
	var last models.Entity
	err := tx.Where("custom_id LIKE ?", entityType.CustomIDPrefix()+"%").
		Order("custom_id DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return models.ParseCustomIDSequence(last.CustomID) + 1, nil
}

// GetEntity looks up a live (not soft-deleted) entity.
func (s *EntityService) GetEntity(id uint) (*models.Entity, error) {
	var entity models.Entity
	err := config.DB.Where("id = ? AND is_deleted = ?", id, false).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// UpdateEntity edits name/type/location. The custom id never changes after
// creation. Soft-deleted entities are not editable.
func (s *EntityService) UpdateEntity(id uint, name string, entityType models.EntityType, location string, actorID *uint) (*models.Entity, error) {
	if !entityType.Valid() {
		return nil, ErrInvalidType
	}

	entity, err := s.GetEntity(id)
	if err != nil {
		return nil, err
	}

	oldValues := map[string]interface{}{
		"name":     entity.Name,
		"type":     string(entity.Type),
		"location": entity.Location,
	}
	newValues := map[string]interface{}{
		"name":     name,
		"type":     string(entityType),
		"location": location,
	}

	entity.Name = name
	entity.Type = entityType
	entity.Location = location

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(entity).Error; err != nil {
			return err
		}
		return s.auditService.Record(tx, models.AuditActionUpdate, actorID,
			models.ObjectTypeEntity, entity.ID, FieldChanges(oldValues, newValues))
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// SoftDeleteEntity flips the deleted flag. Referencing transactions are left
// untouched.
func (s *EntityService) SoftDeleteEntity(id uint, actorID *uint) error {
	entity, err := s.GetEntity(id)
	if err != nil {
		return err
	}

	entity.IsDeleted = true
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(entity).Error; err != nil {
			return err
		}
		return s.auditService.Record(tx, models.AuditActionSoftDelete, actorID,
			models.ObjectTypeEntity, entity.ID, map[string]interface{}{"is_deleted": true})
	})
}

// HardDeleteEntity physically removes the row. Fails while any transaction,
// soft-deleted or not, still references the entity.
func (s *EntityService) HardDeleteEntity(id uint, actorID *uint) error {
	var entity models.Entity
	if err := config.DB.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntityNotFound
		}
		return err
	}

	var refs int64
	if err := config.DB.Model(&models.Transaction{}).Where("entity_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrEntityHasTx
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Entity{}, id).Error; err != nil {
			return err
		}
		return s.auditService.Record(tx, models.AuditActionDelete, actorID,
			models.ObjectTypeEntity, id, map[string]interface{}{"deleted": true})
	})
}

// ListEntities returns live entities ordered by custom id, paginated.
func (s *EntityService) ListEntities(page, perPage int) ([]models.Entity, int64, error) {
	var total int64
	if err := config.DB.Model(&models.Entity{}).Where("is_deleted = ?", false).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []models.Entity
	err := config.DB.Where("is_deleted = ?", false).
		Order("custom_id ASC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&entities).Error
	return entities, total, err
}

type AutocompleteResult struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// Autocomplete matches the query against name or custom id, case-insensitively,
// optionally narrowed by type. At most 20 rows, ordered by custom id.
func (s *EntityService) Autocomplete(q string, entityType string) ([]AutocompleteResult, error) {
	query := config.DB.Model(&models.Entity{}).Where("is_deleted = ?", false)
	if entityType == string(models.EntityTypeDonor) || entityType == string(models.EntityTypeRecipient) {
		query = query.Where("type = ?", entityType)
	}
	if q != "" {
		pattern := fmt.Sprintf("%%%s%%", q)
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(custom_id) LIKE LOWER(?)", pattern, pattern)
	}

	var entities []models.Entity
	if err := query.Order("custom_id ASC").Limit(20).Find(&entities).Error; err != nil {
		return nil, err
	}

	results := make([]AutocompleteResult, 0, len(entities))
	for i := range entities {
		results = append(results, AutocompleteResult{ID: entities[i].ID, Text: entities[i].Label()})
	}
	return results, nil
}
