package repo

import (
	"PassVault/internal/model"
	"context"

	"gorm.io/gorm"
)

// GroupRepository — контракт доступа к PasswordGroup для слоя сервиса.
type GroupRepository interface {
	Create(ctx context.Context, group *model.PasswordGroup) error
	GetByID(ctx context.Context, ownerID, id string) (*model.PasswordGroup, error)
	Update(ctx context.Context, ownerID, id string, updates map[string]any) (*model.PasswordGroup, error)

	// Delete снимает ссылки записей на группу и удаляет её одной транзакцией:
	// ни один читатель не увидит запись, ссылающуюся на удалённую группу.
	Delete(ctx context.Context, ownerID, id string) error

	// ListWithCounts возвращает все группы владельца с живым числом записей в каждой.
	ListWithCounts(ctx context.Context, ownerID string) ([]model.PasswordGroup, error)
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepository создаёт реализацию репозитория для PasswordGroup.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.PasswordGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, ownerID, id string) (*model.PasswordGroup, error) {
	var g model.PasswordGroup
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepo) Update(ctx context.Context, ownerID, id string, updates map[string]any) (*model.PasswordGroup, error) {
	var g model.PasswordGroup
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.PasswordGroup{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&g).Error
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepo) Delete(ctx context.Context, ownerID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// сначала переводим записи группы в "без группы"
		if err := tx.Model(&model.PasswordEntry{}).
			Where("owner_id = ? AND group_id = ?", ownerID, id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.PasswordGroup{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// группы не было — откат вернёт и снятые ссылки
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *groupRepo) ListWithCounts(ctx context.Context, ownerID string) ([]model.PasswordGroup, error) {
	groups := make([]model.PasswordGroup, 0)
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC, id ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}

	type groupCount struct {
		GroupID string
		N       int64
	}
	var counts []groupCount
	if err := r.db.WithContext(ctx).Model(&model.PasswordEntry{}).
		Select("group_id AS group_id, COUNT(*) AS n").
		Where("owner_id = ? AND group_id IS NOT NULL", ownerID).
		Group("group_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]int64, len(counts))
	for _, c := range counts {
		byID[c.GroupID] = c.N
	}
	for i := range groups {
		groups[i].Count = byID[groups[i].ID]
	}
	return groups, nil
}
