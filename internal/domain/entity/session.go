package entity

import (
	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

// Session — аутентифицированный пользователь, от имени которого идёт изменение.
// Передаётся явно в каждую изменяющую операцию.
type Session struct {
	UserID  uuid.UUID
	Role    valueobject.Role
	Profile valueobject.AdminProfile
}

func (s Session) IsAdmin() bool {
	return s.Role == valueobject.RoleAdmin
}

func (s Session) IsBroker() bool {
	return s.Role == valueobject.RoleBroker
}

// PublicSession — клиент, заполняющий proposta по ссылке, без учётной записи.
var PublicSession = Session{}

func (s Session) IsPublic() bool {
	return s.Role == ""
}
