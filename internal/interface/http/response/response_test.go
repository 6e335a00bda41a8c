package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

func serve(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { Error(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestError_MapsAppErrorCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperror.ErrProposalNotFound, http.StatusNotFound, "NOT_FOUND"},
		{apperror.Validation("campo inválido"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{apperror.New(apperror.ErrCodeInvalidBracketFormat, "faixa"), http.StatusUnprocessableEntity, "INVALID_BRACKET_FORMAT"},
		{apperror.New(apperror.ErrCodeUpstreamUnavailable, "email"), http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"},
		{apperror.Persistence(errors.New("pq: boom"), "erro ao salvar"), http.StatusInternalServerError, "PERSISTENCE_ERROR"},
		{apperror.ErrEmailAlreadyUsed, http.StatusConflict, "CONFLICT"},
	}
	for _, tc := range cases {
		w, body := serve(t, tc.err)
		assert.Equal(t, tc.status, w.Code)
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.Error.Code)
	}
}

func TestError_HidesUnknownErrors(t *testing.T) {
	w, body := serve(t, errors.New("sql: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "sql")
}
