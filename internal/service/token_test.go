package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	session := entity.Session{UserID: uuid.New(), Role: valueobject.RoleAdmin, Profile: valueobject.AdminProfileSecretary}

	pair, err := tm.GeneratePair(session)
	require.NoError(t, err)

	got, err := tm.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	_, err = tm.ParseAccess(pair.RefreshToken)
	assert.Error(t, err, "refresh не должен приниматься как access")
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("access", "refresh", -time.Minute, time.Hour)
	pair, err := tm.GeneratePair(entity.Session{UserID: uuid.New(), Role: valueobject.RoleBroker})
	require.NoError(t, err)

	_, err = tm.ParseAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestTokenManager_RejectsPublicRole(t *testing.T) {
	tm := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	pair, err := tm.GeneratePair(entity.PublicSession)
	require.NoError(t, err)

	_, err = tm.ParseAccess(pair.AccessToken)
	assert.Error(t, err)
}
