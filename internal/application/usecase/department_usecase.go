package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack-api/internal/application/dto"
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// DepartmentUseCase casos de uso CRUD para departamentos.
type DepartmentUseCase struct {
	repo    repository.DepartmentRepository
	orgRepo repository.OrganizationRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(repo repository.DepartmentRepository, orgRepo repository.OrganizationRepository) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo, orgRepo: orgRepo}
}

// Create crea un departamento en la organización del actor.
func (uc *DepartmentUseCase) Create(organizationID string, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.orgRepo.GetByID(organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	dept := &entity.Department{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Code:           generateCode(org.Code + "-D"),
		Description:    in.Description,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(dept); err != nil {
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// GetByID obtiene un departamento visible para la organización del actor.
func (uc *DepartmentUseCase) GetByID(organizationID, id string) (*dto.DepartmentResponse, error) {
	dept, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil || dept.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toDepartmentResponse(dept), nil
}

// Update actualiza un departamento de la organización del actor.
func (uc *DepartmentUseCase) Update(organizationID, id string, in dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dept, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil || dept.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		dept.Name = *in.Name
	}
	if in.Description != nil {
		dept.Description = *in.Description
	}
	if in.IsActive != nil {
		dept.IsActive = *in.IsActive
	}
	dept.UpdatedAt = time.Now()
	if err := uc.repo.Update(dept); err != nil {
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// List lista departamentos de la organización con paginación.
func (uc *DepartmentUseCase) List(organizationID string, limit, offset int) ([]*dto.DepartmentResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DepartmentResponse, 0, len(list))
	for _, dept := range list {
		out = append(out, toDepartmentResponse(dept))
	}
	return out, nil
}

func toDepartmentResponse(d *entity.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Code:           d.Code,
		Description:    d.Description,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
