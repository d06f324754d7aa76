package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
	"github.com/sbilibin2017/clima-dashboard/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name            string
		body            string
		mockSetup       func(m *MockRegisterer)
		expectedCode    int
		expectedMessage string
	}{
		{
			name: "success",
			body: `{"username":"alice","email":"alice@x.com","password":"pw123"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), services.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123"}).
					Return(&models.User{ID: 1, Username: "alice", Email: "alice@x.com", PasswordHash: "$2a$10$hash"}, nil)
			},
			expectedCode:    http.StatusCreated,
			expectedMessage: "User registered successfully",
		},
		{
			name:            "missing password",
			body:            `{"username":"alice","email":"alice@x.com"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "missing required fields: password",
		},
		{
			name: "email format is not checked",
			body: `{"username":"alice","email":"alice","password":"pw"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), services.RegisterInput{Username: "alice", Email: "alice", Password: "pw"}).
					Return(&models.User{ID: 2, Username: "alice", Email: "alice"}, nil)
			},
			expectedCode:    http.StatusCreated,
			expectedMessage: "User registered successfully",
		},
		{
			name: "user already exists",
			body: `{"username":"alice","email":"alice@x.com","password":"pw123"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: %s", services.ErrConflict, "users_email_key"))
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "conflict: users_email_key",
		},
		{
			name: "internal server error",
			body: `{"username":"bob","email":"bob@x.com","password":"pw"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errors.New("database failure"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
		{
			name:            "invalid json",
			body:            "{invalid json}",
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewRegisterHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			resp := decodeBody(t, rr)
			assert.Equal(t, tt.expectedMessage, resp["message"])
		})
	}
}

func TestRegisterHandler_DoesNotEchoPasswordHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := NewMockRegisterer(ctrl)
	mockSvc.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(&models.User{ID: 1, Username: "alice", Email: "alice@x.com", PasswordHash: "$2a$10$hash"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/users/register",
		bytes.NewBufferString(`{"username":"alice","email":"alice@x.com","password":"pw123"}`))
	rr := httptest.NewRecorder()
	NewRegisterHandler(mockSvc)(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "$2a$10$hash")
	assert.NotContains(t, rr.Body.String(), "password")

	data := decodeBody(t, rr)["data"].(map[string]any)
	assert.Equal(t, "alice@x.com", data["email"])
}
