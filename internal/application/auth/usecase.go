package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"github.com/rodrantho/storatrack/internal/application/authz"
	"github.com/rodrantho/storatrack/internal/application/dto"
	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/repository"
	"github.com/rodrantho/storatrack/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación: registro de usuarios y login. El token emitido
// transporta el Tenant Context (user_id, company_id, role) que el resto del
// sistema consume como principal ya verificado.
type AuthUseCase struct {
	gateway     *authz.Gateway
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	auditRepo   repository.AuditLogRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	gateway *authz.Gateway,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	auditRepo repository.AuditLogRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		gateway:     gateway,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		auditRepo:   auditRepo,
		jwtCfg:      jwtCfg,
	}
}

// RegisterUser crea un usuario. Reglas de alcance:
// superadmin nuevo -> solo un superadmin puede crearlo, sin empresa;
// staff nuevo -> staff o superadmin;
// client_user nuevo -> empresa obligatoria, y el actor debe tener acceso a ella.
// El CompanyID de un client_user es inmutable una vez asignado.
func (uc *AuthUseCase) RegisterUser(t authz.TenantContext, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Role {
	case entity.RoleSuperadmin:
		if in.CompanyID != nil {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.gateway.RequireSuperadmin(t, ""); err != nil {
			return nil, err
		}
	case entity.RoleStaff:
		if err := uc.gateway.RequireStaff(t, ""); err != nil {
			return nil, err
		}
	case entity.RoleClientUser:
		if in.CompanyID == nil || *in.CompanyID == "" {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.gateway.AuthorizeCompany(t, *in.CompanyID); err != nil {
			return nil, err
		}
		company, err := uc.companyRepo.GetByID(*in.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
	}

	existing, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	fullName := in.FullName
	if fullName == "" {
		fullName = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera el JWT y registra el acceso.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrForbidden
	}

	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, companyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	user.UpdatedAt = now
	_ = uc.userRepo.Update(user)
	_ = uc.auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Action:    entity.AuditActionLogin,
		Entity:    "users",
		EntityID:  user.ID,
		CompanyID: user.CompanyID,
		CreatedAt: now,
	})

	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// ListUsers lista usuarios de una empresa.
func (uc *AuthUseCase) ListUsers(t authz.TenantContext, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	scoped, err := uc.gateway.ScopeCompany(t, companyID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.userRepo.ListByCompany(scoped, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Active:    u.Active,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
