package service

import (
	"PassVault/internal/model"
	"PassVault/internal/repo"
	"context"

	"github.com/google/uuid"
)

// GroupService инкапсулирует бизнес-логику групп записей.
type GroupService struct {
	groups repo.GroupRepository
}

func NewGroupService(groups repo.GroupRepository) *GroupService {
	return &GroupService{groups: groups}
}

// GroupData — поля группы, переданные клиентом. nil — поле не присылали.
type GroupData struct {
	Name  *string
	Color *string
}

func (s *GroupService) Create(ctx context.Context, ownerID string, d GroupData) (*model.PasswordGroup, error) {
	group := &model.PasswordGroup{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
	}
	if d.Name != nil {
		group.Name = *d.Name
	}
	if d.Color != nil {
		group.Color = *d.Color
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, mapRepoErr(err)
	}
	return group, nil
}

func (s *GroupService) Update(ctx context.Context, ownerID, id string, d GroupData) (*model.PasswordGroup, error) {
	updates := map[string]any{}
	if d.Name != nil {
		updates["name"] = *d.Name
	}
	if d.Color != nil {
		updates["color"] = *d.Color
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}
	group, err := s.groups.Update(ctx, ownerID, id, updates)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return group, nil
}

// Delete удаляет группу; её записи становятся "без группы" (политика
// каскада реализована в репозитории одной транзакцией).
func (s *GroupService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.groups.Delete(ctx, ownerID, id); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

// List возвращает все группы владельца с актуальным числом записей.
func (s *GroupService) List(ctx context.Context, ownerID string) ([]model.PasswordGroup, error) {
	groups, err := s.groups.ListWithCounts(ctx, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return groups, nil
}
