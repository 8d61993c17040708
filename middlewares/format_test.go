package middlewares

import (
	"ClinicFlow/apperrors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	return c, recorder
}

func TestRespondJSONWritesStatusAndBody(t *testing.T) {
	c, recorder := newTestContext(t)

	RespondJSON(c, gin.H{"data": []int{1, 2, 3}}, 200)

	assert.Equal(t, 200, recorder.Code)
	assert.JSONEq(t, `{"data":[1,2,3]}`, recorder.Body.String())
}

func TestRespondErrorMapsKinds(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperrors.Validation("bad input"), 400, `{"error":"bad input"}`},
		{"precondition", apperrors.PreconditionFailed("missing vital sign"), 400, `{"error":"missing vital sign"}`},
		{"conflict", apperrors.Conflict("duplicate ticket"), 400, `{"error":"duplicate ticket"}`},
		{"not found", apperrors.NotFound("no such session"), 404, `{"error":"no such session"}`},
		{"internal", apperrors.Internal(errors.New("pq: connection refused"), "query"), 500, `{"error":"internal server error"}`},
		{"unclassified", errors.New("pq: connection refused"), 500, `{"error":"internal server error"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, recorder := newTestContext(t)
			RespondError(c, tc.err)
			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.JSONEq(t, tc.wantBody, recorder.Body.String())
		})
	}
}

func TestHttpErrorMasksUnderlyingError(t *testing.T) {
	c, recorder := newTestContext(t)

	HttpError(c, "Failed to generate tokens", 500, errors.New("key material missing"))

	assert.Equal(t, 500, recorder.Code)
	assert.JSONEq(t, `{"error":"Failed to generate tokens"}`, recorder.Body.String())
}
