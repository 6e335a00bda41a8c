package adminuser

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/validation"
)

type CreateInput struct {
	Name        string
	Email       string
	Password    string
	Profile     string
	Permissions entity.Permissions
}

// UpdateInput: пустые поля не меняются. Permissions != nil пересчитывает права.
type UpdateInput struct {
	Name        string
	Email       string
	Password    string
	Profile     string
	Permissions entity.Permissions
}

type AdminUserUseCase struct {
	users repository.AdminUserRepository
	cost  int
}

func NewAdminUserUseCase(users repository.AdminUserRepository) *AdminUserUseCase {
	return &AdminUserUseCase{users: users, cost: bcrypt.DefaultCost}
}

// Управлять пользователями может только perfil master.
func requireMaster(session entity.Session) error {
	if !session.IsAdmin() || session.Profile != valueobject.AdminProfileMaster {
		return apperror.ErrForbidden
	}
	return nil
}

func (uc *AdminUserUseCase) List(ctx context.Context, session entity.Session) ([]*entity.AdminUser, error) {
	if !session.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	return uc.users.List(ctx)
}

func (uc *AdminUserUseCase) Create(ctx context.Context, session entity.Session, input CreateInput) (*entity.AdminUser, error) {
	if err := requireMaster(session); err != nil {
		return nil, err
	}
	if err := validation.ValidateLength("nome", strings.TrimSpace(input.Name), validation.MinNameLength, validation.MaxNameLength); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	profile, err := valueobject.NewAdminProfile(input.Profile)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureEmailFree(ctx, input.Email, uuid.Nil); err != nil {
		return nil, err
	}

	perms, err := uc.permissionsFor(ctx, profile, input.Permissions)
	if err != nil {
		return nil, err
	}
	hash, err := uc.hash(input.Password)
	if err != nil {
		return nil, err
	}

	creator := session.UserID
	user, err := entity.NewAdminUser(input.Name, input.Email, hash, profile, perms, &creator)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AdminUserUseCase) Update(ctx context.Context, session entity.Session, id uuid.UUID, input UpdateInput) (*entity.AdminUser, error) {
	if err := requireMaster(session); err != nil {
		return nil, err
	}
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		if err := validation.ValidateLength("nome", name, validation.MinNameLength, validation.MaxNameLength); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" && email != user.Email {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, err
		}
		if err := uc.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.Password != "" {
		if err := validation.ValidatePassword(input.Password); err != nil {
			return nil, err
		}
		if user.PasswordHash, err = uc.hash(input.Password); err != nil {
			return nil, err
		}
	}

	profileChanged := false
	if input.Profile != "" {
		profile, err := valueobject.NewAdminProfile(input.Profile)
		if err != nil {
			return nil, err
		}
		profileChanged = profile != user.Profile
		user.Profile = profile
	}
	if profileChanged || input.Permissions != nil {
		if user.Permissions, err = uc.permissionsFor(ctx, user.Profile, input.Permissions); err != nil {
			return nil, err
		}
	}

	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AdminUserUseCase) ChangeStatus(ctx context.Context, session entity.Session, id uuid.UUID, rawStatus string) (*entity.AdminUser, error) {
	if err := requireMaster(session); err != nil {
		return nil, err
	}
	status, err := valueobject.NewAdminStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if id == session.UserID && status == valueobject.AdminStatusInactive {
		return nil, apperror.Validation("não é possível desativar o próprio usuário")
	}
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AdminUserUseCase) Delete(ctx context.Context, session entity.Session, id uuid.UUID) error {
	if err := requireMaster(session); err != nil {
		return err
	}
	if id == session.UserID {
		return apperror.Validation("não é possível excluir o próprio usuário")
	}
	return uc.users.Delete(ctx, id)
}

func (uc *AdminUserUseCase) ProfilePermissions(ctx context.Context, session entity.Session, rawProfile string) (entity.Permissions, error) {
	if !session.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	profile, err := valueobject.NewAdminProfile(rawProfile)
	if err != nil {
		return nil, err
	}
	return uc.users.ProfilePermissions(ctx, profile)
}

// permissionsFor: права perfil по умолчанию, поверх них custom целыми модулями.
func (uc *AdminUserUseCase) permissionsFor(ctx context.Context, profile valueobject.AdminProfile, custom entity.Permissions) (entity.Permissions, error) {
	defaults, err := uc.users.ProfilePermissions(ctx, profile)
	if err != nil {
		return nil, err
	}
	return defaults.Merge(custom), nil
}

func (uc *AdminUserUseCase) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.ErrEmailAlreadyUsed
	}
	return nil
}

func (uc *AdminUserUseCase) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "erro ao processar senha")
	}
	return string(hash), nil
}
