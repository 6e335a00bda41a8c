package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

type AdminUserRepository interface {
	List(ctx context.Context) ([]*entity.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error)
	// FindByEmail возвращает nil, nil если пользователя нет.
	FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	Create(ctx context.Context, user *entity.AdminUser) error
	Update(ctx context.Context, user *entity.AdminUser) error
	Delete(ctx context.Context, id uuid.UUID) error
	TouchLastAccess(ctx context.Context, id uuid.UUID) error
	ProfilePermissions(ctx context.Context, profile valueobject.AdminProfile) (entity.Permissions, error)
}

type BrokerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Broker, error)
	// FindByEmail возвращает nil, nil если corretor нет.
	FindByEmail(ctx context.Context, email string) (*entity.Broker, error)
}

type CommissionRepository interface {
	ListByBroker(ctx context.Context, brokerID uuid.UUID) ([]*entity.Commission, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error)
	Update(ctx context.Context, commission *entity.Commission) error
}
