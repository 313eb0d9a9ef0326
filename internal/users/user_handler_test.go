package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	custom_error "assettrack/pkg/errors"
	"assettrack/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.CreateUserRequest, hashedPassword []byte) error {
	args := m.Called(req, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "1")
	c.Set("role", "ADMIN")
	return c, w
}

func TestRegisterUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		payload        models.CreateUserRequest
		setupMock      func(repo *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "successful registration",
			payload: models.CreateUserRequest{
				Username: "testuser",
				Password: "password123",
				Fullname: "Test User",
				Role:     "EMPLOYEE",
			},
			setupMock: func(repo *MockUserRepository) {
				repo.On("PersistUser", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "short password rejected",
			payload: models.CreateUserRequest{
				Username: "testuser",
				Password: "abc",
				Role:     "EMPLOYEE",
			},
			setupMock:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown role rejected",
			payload: models.CreateUserRequest{
				Username: "testuser",
				Password: "password123",
				Role:     "SUPERVISOR",
			},
			setupMock:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			payload: models.CreateUserRequest{
				Username: "testuser",
				Password: "password123",
				Role:     "MANAGER",
			},
			setupMock: func(repo *MockUserRepository) {
				repo.On("PersistUser", mock.Anything, mock.Anything).
					Return(custom_error.WrapDBError("username already taken", "23505")).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "repository error",
			payload: models.CreateUserRequest{
				Username: "testuser",
				Password: "password123",
				Role:     "EMPLOYEE",
			},
			setupMock: func(repo *MockUserRepository) {
				repo.On("PersistUser", mock.Anything, mock.Anything).Return(errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			handler := NewHandler(mockRepo)
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("POST", "/register/", bytes.NewBuffer(body))

			handler.RegisterUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetUserList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	mockRepo.On("GetUsers").Return([]models.User{
		{ID: 1, Username: "alice", Role: "ADMIN"},
		{ID: 2, Username: "bob", Role: "EMPLOYEE"},
	}, nil).Once()

	c, w := setupTestContext()
	c.Request = httptest.NewRequest("GET", "/users", nil)

	handler.GetUserList(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
	mockRepo.AssertExpectations(t)
}

func TestGetUserDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		userID         string
		setupMock      func(repo *MockUserRepository)
		expectedStatus int
	}{
		{
			name:   "existing user",
			userID: "2",
			setupMock: func(repo *MockUserRepository) {
				repo.On("GetUser", 2).Return(&models.User{
					ID: 2, Username: "bob", Fullname: "Bob B", Role: "EMPLOYEE",
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "unknown user",
			userID: "99",
			setupMock: func(repo *MockUserRepository) {
				repo.On("GetUser", 99).Return(nil, custom_error.NewNotFoundError("user", 99)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed id",
			userID:         "abc",
			setupMock:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			handler := NewHandler(mockRepo)

			c, w := setupTestContext()
			c.Params = gin.Params{{Key: "id", Value: tt.userID}}
			c.Request = httptest.NewRequest("GET", "/users/"+tt.userID, nil)

			handler.GetUserDetail(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				// The password hash must never leave the server.
				assert.NotContains(t, w.Body.String(), "password")
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		userID         string
		setupMock      func(repo *MockUserRepository)
		expectedStatus int
	}{
		{
			name:   "successful delete",
			userID: "2",
			setupMock: func(repo *MockUserRepository) {
				repo.On("DeleteUser", 2).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "self delete rejected",
			userID:         "1",
			setupMock:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			userID: "99",
			setupMock: func(repo *MockUserRepository) {
				repo.On("DeleteUser", 99).Return(custom_error.NewNotFoundError("user", 99)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			handler := NewHandler(mockRepo)

			c, w := setupTestContext()
			c.Params = gin.Params{{Key: "id", Value: tt.userID}}
			c.Request = httptest.NewRequest("DELETE", "/users/"+tt.userID, nil)

			handler.DeleteUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}
