package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

func validMessage() repository.EmailMessage {
	return repository.EmailMessage{
		To:     "cliente@example.com",
		Name:   "Cliente",
		Kind:   repository.EmailProposalClient,
		Broker: "Ana",
		Link:   "https://app.example/proposta-digital/completar/1",
	}
}

func TestFunctionClient_Send(t *testing.T) {
	var got map[string]any
	var auth, apikey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		apikey = r.Header.Get("apikey")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewFunctionClient(srv.URL, "tok", time.Second, 100).WithSenderName("Contratando Planos")
	require.NoError(t, c.Send(context.Background(), validMessage()))

	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "tok", apikey)
	assert.Equal(t, "cliente@example.com", got["to"])
	assert.Equal(t, "proposta_cliente", got["tipo"])
	assert.Equal(t, "Complete sua proposta de plano de saúde", got["subject"])
	assert.Equal(t, "Ana", got["corretor"])
	assert.Equal(t, "Contratando Planos", got["from_name"])
	_, hasMotivo := got["motivo"]
	assert.False(t, hasMotivo)
}

func TestFunctionClient_Non2xxIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Dados obrigatórios ausentes"}`))
	}))
	defer srv.Close()

	err := NewFunctionClient(srv.URL, "tok", time.Second, 100).Send(context.Background(), validMessage())
	require.Error(t, err)
	assert.True(t, apperror.IsUpstreamUnavailable(err))
	assert.Contains(t, err.Error(), "Dados obrigatórios ausentes")
}

func TestFunctionClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	err := NewFunctionClient(srv.URL, "tok", 20*time.Millisecond, 100).Send(context.Background(), validMessage())
	assert.True(t, apperror.IsUpstreamUnavailable(err))
}

func TestFunctionClient_ValidatesBeforeCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	c := NewFunctionClient(srv.URL, "tok", time.Second, 100)

	msg := validMessage()
	msg.To = ""
	assert.True(t, apperror.IsValidation(c.Send(context.Background(), msg)))

	msg = validMessage()
	msg.To = "sem-arroba"
	assert.True(t, apperror.IsValidation(c.Send(context.Background(), msg)))

	msg = validMessage()
	msg.Name = "  "
	assert.True(t, apperror.IsValidation(c.Send(context.Background(), msg)))

	assert.False(t, called)
}

func TestLogSender(t *testing.T) {
	s := NewLogSender()
	assert.NoError(t, s.Send(context.Background(), validMessage()))

	msg := validMessage()
	msg.To = ""
	assert.True(t, apperror.IsValidation(s.Send(context.Background(), msg)))
}
