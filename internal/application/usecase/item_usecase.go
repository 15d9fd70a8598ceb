package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack-api/internal/application/dto"
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para el catálogo de artículos.
// Las cantidades en stock no se tocan aquí: se manejan vía movimientos.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un artículo. El SKU es único por organización.
func (uc *ItemUseCase) Create(organizationID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetBySKU(organizationID, in.SKU); existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := in.UnitOfMeasure
	if unit == "" {
		unit = "units"
	}
	now := time.Now()
	item := &entity.Item{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		SKU:            in.SKU,
		Description:    in.Description,
		Category:       in.Category,
		UnitOfMeasure:  unit,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo visible para la organización del actor.
func (uc *ItemUseCase) GetByID(organizationID, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update actualiza un artículo. El SKU es inmutable.
func (uc *ItemUseCase) Update(organizationID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.UnitOfMeasure != nil {
		item.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista artículos de la organización con paginación.
func (uc *ItemUseCase) List(organizationID string, limit, offset int) ([]*dto.ItemResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:             i.ID,
		OrganizationID: i.OrganizationID,
		Name:           i.Name,
		SKU:            i.SKU,
		Description:    i.Description,
		Category:       i.Category,
		UnitOfMeasure:  i.UnitOfMeasure,
		IsActive:       i.IsActive,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
