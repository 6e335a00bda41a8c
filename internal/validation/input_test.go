package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("Cliente.Teste+1@Exemplo.com.br"))

	for _, bad := range []string{"", "sem-arroba", "a@b", "a@@b.com", "a b@c.com", "@c.com"} {
		err := ValidateEmail(bad)
		assert.True(t, apperror.IsValidation(err), bad)
	}
}

func TestValidateCPF(t *testing.T) {
	assert.NoError(t, ValidateCPF("529.982.247-25"))
	assert.NoError(t, ValidateCPF("52998224725"))

	assert.Error(t, ValidateCPF("529.982.247-24"))
	assert.Error(t, ValidateCPF("111.111.111-11"))
	assert.Error(t, ValidateCPF("123"))
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("nome", "Zé", 2, 10))
	assert.Error(t, ValidateLength("nome", "Z", 2, 10))
	assert.Error(t, ValidateLength("nome", "Zeeeeeeeeee", 2, 10))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Segura123"))
	assert.Error(t, ValidatePassword("curta1A"))
	assert.Error(t, ValidatePassword("semnumeroA"))
	assert.Error(t, ValidatePassword("SEMMINUSCULA1"))
	assert.Error(t, ValidatePassword("semmaiuscula1"))
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "11987654321", OnlyDigits("(11) 98765-4321"))
}
