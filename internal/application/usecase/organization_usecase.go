package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack-api/internal/application/dto"
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// OrganizationUseCase casos de uso CRUD para organizaciones (tenant raíz).
type OrganizationUseCase struct {
	repo repository.OrganizationRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(repo repository.OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo}
}

// Create crea una organización. El código se autogenera si viene vacío.
func (uc *OrganizationUseCase) Create(in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	code := in.Code
	if code == "" {
		code = generateCode("ORG")
	}
	if existing, _ := uc.repo.GetByCode(code); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      code,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// GetByID obtiene una organización por ID.
func (uc *OrganizationUseCase) GetByID(id string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return toOrganizationResponse(org), nil
}

// Update actualiza una organización. El código es inmutable.
func (uc *OrganizationUseCase) Update(id string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		org.Name = *in.Name
	}
	if in.Address != nil {
		org.Address = *in.Address
	}
	if in.Phone != nil {
		org.Phone = *in.Phone
	}
	if in.Email != nil {
		org.Email = *in.Email
	}
	if in.IsActive != nil {
		org.IsActive = *in.IsActive
	}
	org.UpdatedAt = time.Now()
	if err := uc.repo.Update(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// List lista organizaciones con paginación.
func (uc *OrganizationUseCase) List(limit, offset int) ([]*dto.OrganizationResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrganizationResponse, 0, len(list))
	for _, org := range list {
		out = append(out, toOrganizationResponse(org))
	}
	return out, nil
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	return &dto.OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Code:      o.Code,
		Address:   o.Address,
		Phone:     o.Phone,
		Email:     o.Email,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// generateCode genera un código corto legible con el prefijo dado, ej. ORG-A1B2C3.
func generateCode(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, id[:6])
}
