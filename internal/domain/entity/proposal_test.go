package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectProposalRecord_Normalize(t *testing.T) {
	rec := &DirectProposalRecord{
		ID:        uuid.New(),
		Status:    "pendente",
		Name:      "Maria Souza",
		Email:     "maria@example.com",
		WhatsApp:  "+5511999990000",
		PlanValue: 420.5,
		DocumentURLs: map[string]string{
			"rg_frente": "https://cdn.example/rg.png",
			"cpf":       "blob:local",
		},
	}

	p := rec.Normalize()

	assert.Equal(t, valueobject.OriginDirect, p.Origin)
	assert.Equal(t, "Maria Souza", p.ClientName)
	assert.Equal(t, "+5511999990000", p.ClientPhone)
	assert.Equal(t, 420.5, p.Value)
	assert.Equal(t, DirectBrokerName, p.BrokerName)
	assert.Equal(t, map[string]string{"rg_frente": "https://cdn.example/rg.png"}, p.Documents)
}

func TestBrokerProposalRecord_Normalize_PrefersBrokerColumns(t *testing.T) {
	rec := &BrokerProposalRecord{
		ID:             uuid.New(),
		Status:         "ASSINADO",
		Client:         "João Lima",
		ClientName:     "ignorado",
		ClientEmail:    "joao@example.com",
		Email:          "outro@example.com",
		ClientWhatsApp: "11988887777",
		ProposalValue:  310,
		Value:          999,
		BrokerName:     "Ana Corretora",
		BrokerEmail:    "ana@example.com",
	}

	p := rec.Normalize()

	assert.Equal(t, valueobject.OriginBroker, p.Origin)
	assert.Equal(t, valueobject.ProposalStatusSigned, p.Status)
	assert.Equal(t, "João Lima", p.ClientName)
	assert.Equal(t, "joao@example.com", p.ClientEmail)
	assert.Equal(t, "11988887777", p.ClientPhone)
	assert.Equal(t, 310.0, p.Value)
	assert.Equal(t, "Ana Corretora", p.BrokerName)
}

func TestBrokerProposalRecord_Normalize_FallbackColumns(t *testing.T) {
	rec := &BrokerProposalRecord{
		ID:         uuid.New(),
		ClientName: "Carla Dias",
		Email:      "carla@example.com",
		Phone:      "1133334444",
		Value:      150,
		RGFrontURL: "/storage/rg.png",
		CNSURL:     "ftp://nope",
	}

	p := rec.Normalize()

	assert.Equal(t, "Carla Dias", p.ClientName)
	assert.Equal(t, "carla@example.com", p.ClientEmail)
	assert.Equal(t, "1133334444", p.ClientPhone)
	assert.Equal(t, 150.0, p.Value)
	assert.Equal(t, DefaultBrokerName, p.BrokerName)
	assert.Equal(t, valueobject.ProposalStatusPending, p.Status)
	assert.Equal(t, map[string]string{"rg_frente": "/storage/rg.png"}, p.Documents)
	assert.ElementsMatch(t, []string{"rg_verso", "cpf", "comprovante_residencia", "cns"}, p.MissingDocuments())
}

func TestNewProposal_Validation(t *testing.T) {
	_, err := NewProposal(valueobject.OriginDirect, NewProposalInput{ClientEmail: "a@b.com"})
	assert.True(t, apperror.IsValidation(err))

	_, err = NewProposal("outra", NewProposalInput{ClientName: "A", ClientEmail: "a@b.com"})
	assert.True(t, apperror.IsValidation(err))

	p, err := NewProposal(valueobject.OriginBroker, NewProposalInput{ClientName: " A ", ClientEmail: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "A", p.ClientName)
	assert.Equal(t, valueobject.ProposalStatusPending, p.Status)
}

func TestSummarize(t *testing.T) {
	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)

	summary := Summarize([]*Commission{
		{Value: 100, Status: valueobject.CommissionStatusPending, Date: &march},
		{Value: 50, Status: valueobject.CommissionStatusPaid, Date: &march},
		{Value: 30, Status: valueobject.CommissionStatusPaid, CreatedAt: april},
	})

	assert.Equal(t, 100.0, summary.TotalPending)
	assert.Equal(t, 80.0, summary.TotalPaid)
	assert.Equal(t, map[string]float64{"2024-03": 150, "2024-04": 30}, summary.ByMonth)
}

func TestPermissions_Merge(t *testing.T) {
	base := Permissions{"propostas": {"ver": true}, "usuarios": {"ver": false}}
	merged := base.Merge(Permissions{"usuarios": {"ver": true, "editar": true}})

	assert.True(t, merged.Allows("propostas", "ver"))
	assert.True(t, merged.Allows("usuarios", "editar"))
	assert.False(t, base.Allows("usuarios", "ver"))
}

func TestNewPriceBracket_RejectsBadLabel(t *testing.T) {
	_, err := NewPriceBracket(uuid.New(), "19-abc", 10)
	assert.True(t, apperror.IsInvalidBracketFormat(err))

	b, err := NewPriceBracket(uuid.New(), " 59+ ", 900)
	require.NoError(t, err)
	assert.Equal(t, "59+", b.Label)
}
