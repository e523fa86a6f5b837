package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcatalyst/internal/model"
	"marketcatalyst/internal/service"
)

// stubPlatformService implements service.PlatformService with canned outcomes.
type stubPlatformService struct {
	registerResult *service.UserResult
	authResult     *service.UserResult
	authErr        error
}

func (s *stubPlatformService) Register(ctx context.Context, username, password string) *service.UserResult {
	return s.registerResult
}

func (s *stubPlatformService) Authenticate(ctx context.Context, username, password string) (*service.UserResult, error) {
	return s.authResult, s.authErr
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload["error"]
}

func TestUserHandler_CreateUser_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "missing username",
			body:    `{"password":"p1","confirmP":"p1"}`,
			wantMsg: "Username not present.",
		},
		{
			name:    "missing password",
			body:    `{"username":"alice","confirmP":"p1"}`,
			wantMsg: "Password not present.",
		},
		{
			name:    "missing confirmation",
			body:    `{"username":"alice","password":"p1"}`,
			wantMsg: "Password not present.",
		},
		{
			name:    "confirmation mismatch",
			body:    `{"username":"alice","password":"p1","confirmP":"p2"}`,
			wantMsg: "Password confirmation does not match.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&stubPlatformService{}, nil)
			c, rec := newTestContext(t, http.MethodPost, "/users", tt.body)

			require.NoError(t, h.CreateUser(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec))
		})
	}
}

func TestUserHandler_CreateUser_Success(t *testing.T) {
	svc := &stubPlatformService{
		registerResult: service.NewUserResult(&model.User{ID: 1, Username: "alice"}, ""),
	}
	h := NewUserHandler(svc, nil)
	c, rec := newTestContext(t, http.MethodPost, "/users", `{"username":"alice","password":"p1","confirmP":"p1"}`)

	require.NoError(t, h.CreateUser(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var dto map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, float64(1), dto["id"])
	assert.Equal(t, "alice", dto["username"])
	assert.Nil(t, dto["token"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_CreateUser_ServiceFailure(t *testing.T) {
	svc := &stubPlatformService{
		registerResult: service.NewUserResult(nil, "User already exists."),
	}
	h := NewUserHandler(svc, nil)
	c, rec := newTestContext(t, http.MethodPost, "/users", `{"username":"alice","password":"p1","confirmP":"p1"}`)

	require.NoError(t, h.CreateUser(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists.", decodeError(t, rec))
}

func TestUserHandler_AuthUser(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svc      *stubPlatformService
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing fields rejected before the service",
			body:     `{"username":"alice"}`,
			svc:      &stubPlatformService{},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Unable to authenticate credentials.",
		},
		{
			name: "service failure message is discarded",
			body: `{"username":"alice","password":"wrong"}`,
			svc: &stubPlatformService{
				authResult: service.NewUserResult(nil, "Unable to authenticate user credentials."),
			},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Unable to authenticate credentials.",
		},
		{
			name: "success returns the projected user",
			body: `{"username":"alice","password":"p1"}`,
			svc: &stubPlatformService{
				authResult: service.NewUserResult(&model.User{ID: 1, Username: "alice", Token: "signed-token"}, ""),
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(tt.svc, nil)
			c, rec := newTestContext(t, http.MethodPost, "/users/auth", tt.body)

			require.NoError(t, h.AuthUser(c))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeError(t, rec))
			} else {
				var dto map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
				assert.Equal(t, "alice", dto["username"])
				assert.Equal(t, "signed-token", dto["token"])
			}
		})
	}
}

func TestUserHandler_AuthUser_TokenPersistenceFailurePropagates(t *testing.T) {
	svc := &stubPlatformService{authErr: errors.New("store token: connection refused")}
	h := NewUserHandler(svc, nil)
	c, _ := newTestContext(t, http.MethodPost, "/users/auth", `{"username":"alice","password":"p1"}`)

	err := h.AuthUser(c)

	assert.Error(t, err)
}

func TestUserHandler_ListUsers(t *testing.T) {
	seed := []model.User{{ID: 1, Username: "Jimmy"}}
	h := NewUserHandler(&stubPlatformService{}, seed)
	c, rec := newTestContext(t, http.MethodGet, "/users", "")

	require.NoError(t, h.ListUsers(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var dtos []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "Jimmy", dtos[0]["username"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_Checks(t *testing.T) {
	h := NewUserHandler(&stubPlatformService{}, nil)

	for name, probe := range map[string]echo.HandlerFunc{
		"admin":        h.CheckAdmin,
		"dataconsumer": h.CheckDataConsumer,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodGet, "/users/auth/check/"+name, "")

			require.NoError(t, probe(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"isAuthorized":true}`, rec.Body.String())
		})
	}
}
