package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthControllerTest(t *testing.T) (*gorm.DB, *gin.Engine, service.AuthService) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(
		userRepo,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)

	ctrl := NewAuthController(authService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.GET("/me", authMiddleware.Authenticate(), ctrl.Me)

	return testDB, router, authService
}

func TestAuthController_Register_Success(t *testing.T) {
	testDB, router, _ := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	reqBody := RegisterRequest{
		Email:     "advisor@autoshop.local",
		Password:  "ChangeMe123!",
		FirstName: "Ama",
		LastName:  "Mensah",
		Role:      model.RoleServiceAdvisor,
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.NotNil(t, response["user"])
	assert.NotEmpty(t, response["access_token"])
	assert.NotEmpty(t, response["refresh_token"])
}

func TestAuthController_Register_InvalidRequests(t *testing.T) {
	testDB, router, _ := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name string
		body RegisterRequest
	}{
		{
			name: "Invalid email",
			body: RegisterRequest{
				Email:     "not-an-email",
				Password:  "ChangeMe123!",
				FirstName: "Ama",
				LastName:  "Mensah",
			},
		},
		{
			name: "Password too short",
			body: RegisterRequest{
				Email:     "advisor@autoshop.local",
				Password:  "short",
				FirstName: "Ama",
				LastName:  "Mensah",
			},
		},
		{
			name: "Missing name",
			body: RegisterRequest{
				Email:    "advisor@autoshop.local",
				Password: "ChangeMe123!",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid request data")
		})
	}
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	testDB, router, authService := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := authService.Register("advisor@autoshop.local", "ChangeMe123!", "Ama", "Mensah", model.RoleServiceAdvisor)
	require.NoError(t, err)

	reqBody := RegisterRequest{
		Email:     "advisor@autoshop.local",
		Password:  "AnotherPass456!",
		FirstName: "Kofi",
		LastName:  "Boateng",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
}

func TestAuthController_Login(t *testing.T) {
	testDB, router, authService := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	email := "cashier@autoshop.local"
	password := "ChangeMe123!"
	_, _, err := authService.Register(email, password, "Kofi", "Boateng", model.RoleCashier)
	require.NoError(t, err)

	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "Valid credentials",
			email:          email,
			password:       password,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Wrong password",
			email:          email,
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown user",
			email:          "nobody@autoshop.local",
			password:       password,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(LoginRequest{Email: tt.email, Password: tt.password})
			req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "access_token")
			}
		})
	}
}

func TestAuthController_Me(t *testing.T) {
	testDB, router, authService := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	_, tokens, err := authService.Register("advisor@autoshop.local", "ChangeMe123!", "Ama", "Mensah", model.RoleServiceAdvisor)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "advisor@autoshop.local")

	// No token
	req = httptest.NewRequest("GET", "/me", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
