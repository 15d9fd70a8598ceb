package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack-api/internal/application/dto"
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para almacenes y su catálogo de proveedor.
type StoreUseCase struct {
	repo           repository.StoreRepository
	itemRepo       repository.ItemRepository
	vendorItemRepo repository.VendorItemRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(
	repo repository.StoreRepository,
	itemRepo repository.ItemRepository,
	vendorItemRepo repository.VendorItemRepository,
) *StoreUseCase {
	return &StoreUseCase{repo: repo, itemRepo: itemRepo, vendorItemRepo: vendorItemRepo}
}

// Create crea un almacén. El código se autogenera si viene vacío, con
// prefijo según el tipo (STORE- para internos, VEND- para proveedores).
func (uc *StoreUseCase) Create(organizationID string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	storeType := in.StoreType
	if storeType == "" {
		storeType = entity.StoreTypeInternal
	}
	switch storeType {
	case entity.StoreTypeInternal, entity.StoreTypeVendor, entity.StoreTypeWard, entity.StoreTypeClinic:
	default:
		return nil, domain.ErrInvalidInput
	}
	code := in.Code
	if code == "" {
		prefix := "STORE"
		if storeType == entity.StoreTypeVendor {
			prefix = "VEND"
		}
		code = generateCode(prefix)
	}
	now := time.Now()
	store := &entity.Store{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		DepartmentID:   in.DepartmentID,
		Name:           in.Name,
		Code:           code,
		StoreType:      storeType,
		ContactPerson:  in.ContactPerson,
		ContactEmail:   in.ContactEmail,
		ContactPhone:   in.ContactPhone,
		Address:        in.Address,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene un almacén visible para la organización del actor.
func (uc *StoreUseCase) GetByID(organizationID, id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil || store.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// Update actualiza un almacén. Código y tipo son inmutables.
func (uc *StoreUseCase) Update(organizationID, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil || store.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		store.Name = *in.Name
	}
	if in.ContactPerson != nil {
		store.ContactPerson = *in.ContactPerson
	}
	if in.ContactEmail != nil {
		store.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		store.ContactPhone = *in.ContactPhone
	}
	if in.Address != nil {
		store.Address = *in.Address
	}
	if in.IsActive != nil {
		store.IsActive = *in.IsActive
	}
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List lista almacenes de la organización con paginación.
func (uc *StoreUseCase) List(organizationID string, limit, offset int) ([]*dto.StoreResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StoreResponse, 0, len(list))
	for _, store := range list {
		out = append(out, toStoreResponse(store))
	}
	return out, nil
}

// AddVendorItem asocia un artículo al catálogo de un proveedor con su precio.
// Solo aplica a almacenes de tipo vendor.
func (uc *StoreUseCase) AddVendorItem(organizationID, storeID string, in dto.CreateVendorItemRequest) (*dto.VendorItemResponse, error) {
	store, err := uc.repo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if !store.IsVendor() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	currency := in.Currency
	if currency == "" {
		currency = "GBP"
	}
	now := time.Now()
	vi := &entity.VendorItem{
		ID:                   uuid.New().String(),
		VendorID:             store.ID,
		ItemID:               item.ID,
		Price:                in.Price,
		Currency:             currency,
		LeadTimeDays:         in.LeadTimeDays,
		MinimumOrderQuantity: in.MinimumOrderQuantity,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.vendorItemRepo.Create(vi); err != nil {
		return nil, err
	}
	return toVendorItemResponse(vi), nil
}

// ListVendorItems lista el catálogo de un proveedor.
func (uc *StoreUseCase) ListVendorItems(organizationID, storeID string, limit, offset int) ([]*dto.VendorItemResponse, error) {
	store, err := uc.repo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.vendorItemRepo.ListByVendor(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VendorItemResponse, 0, len(list))
	for _, vi := range list {
		out = append(out, toVendorItemResponse(vi))
	}
	return out, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:             s.ID,
		OrganizationID: s.OrganizationID,
		DepartmentID:   s.DepartmentID,
		Name:           s.Name,
		Code:           s.Code,
		StoreType:      s.StoreType,
		ContactPerson:  s.ContactPerson,
		ContactEmail:   s.ContactEmail,
		ContactPhone:   s.ContactPhone,
		Address:        s.Address,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toVendorItemResponse(vi *entity.VendorItem) *dto.VendorItemResponse {
	return &dto.VendorItemResponse{
		ID:                   vi.ID,
		VendorID:             vi.VendorID,
		ItemID:               vi.ItemID,
		Price:                vi.Price,
		Currency:             vi.Currency,
		LeadTimeDays:         vi.LeadTimeDays,
		MinimumOrderQuantity: vi.MinimumOrderQuantity,
		IsActive:             vi.IsActive,
		CreatedAt:            vi.CreatedAt,
		UpdatedAt:            vi.UpdatedAt,
	}
}
