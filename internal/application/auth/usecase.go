package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medtrack/medtrack-api/internal/application/dto"
	"github.com/medtrack/medtrack-api/internal/domain"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
	"github.com/medtrack/medtrack-api/internal/domain/repository"
	"github.com/medtrack/medtrack-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	deptRepo repository.DepartmentRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	deptRepo repository.DepartmentRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, orgRepo: orgRepo, deptRepo: deptRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: valida organización y departamento, hashea
// password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email
// ya está registrado.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || in.OrganizationID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	org, err := uc.orgRepo.GetByID(in.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if in.DepartmentID != "" {
		dept, err := uc.deptRepo.GetByID(in.DepartmentID)
		if err != nil {
			return nil, err
		}
		if dept == nil || dept.OrganizationID != in.OrganizationID {
			return nil, domain.ErrNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.FullName
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOfficer
	}
	user := &entity.User{
		ID:                 uuid.New().String(),
		OrganizationID:     in.OrganizationID,
		DepartmentID:       in.DepartmentID,
		Email:              in.Email,
		PasswordHash:       string(hash),
		FullName:           name,
		Role:               role,
		IsActive:           true,
		EmailNotifications: true,
		NotificationLevel:  entity.NotifyAll,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Usuarios inactivos o suspendidos no pueden iniciar sesión.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive || user.IsSuspended {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.OrganizationID, user.DepartmentID,
		user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// GetUser obtiene un usuario de la organización del actor.
func (uc *AuthUseCase) GetUser(organizationID, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// ListUsers lista usuarios de la organización; si role viene informado
// filtra por ese rol.
func (uc *AuthUseCase) ListUsers(organizationID, role string, limit, offset int) ([]*dto.UserResponse, error) {
	var (
		users []*entity.User
		err   error
	)
	if role != "" {
		users, err = uc.userRepo.ListByRole(organizationID, role)
	} else {
		users, err = uc.userRepo.ListByOrganization(organizationID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// SetUserStatus activa, desactiva o suspende una cuenta. Solo opera sobre
// usuarios de la organización del actor.
func (uc *AuthUseCase) SetUserStatus(organizationID, id string, isActive, isSuspended bool) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	user.IsActive = isActive
	user.IsSuspended = isSuspended
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		OrganizationID: u.OrganizationID,
		DepartmentID:   u.DepartmentID,
		Role:           u.Role,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
