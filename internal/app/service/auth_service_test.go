package service

import (
	"testing"
	"time"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*gorm.DB, AuthService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(
		userRepo,
		"test-jwt-secret",
		15*time.Minute,
		7*24*time.Hour,
	)

	return testDB, authService
}

func TestAuthService_Register(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name     string
		email    string
		password string
		role     model.UserRole
		wantRole model.UserRole
		wantErr  error
	}{
		{
			name:     "Valid registration",
			email:    "advisor@autoshop.local",
			password: "ChangeMe123!",
			role:     model.RoleServiceAdvisor,
			wantRole: model.RoleServiceAdvisor,
		},
		{
			name:     "Empty role defaults to customer",
			email:    "walkin@example.com",
			password: "ChangeMe123!",
			wantRole: model.RoleCustomer,
		},
		{
			name:     "Duplicate email",
			email:    "advisor@autoshop.local",
			password: "AnotherPass456!",
			role:     model.RoleTechnician,
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(tt.email, tt.password, "Ama", "Mensah", tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.wantRole, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	email := "cashier@autoshop.local"
	password := "ChangeMe123!"
	_, _, err := authService.Register(email, password, "Kofi", "Boateng", model.RoleCashier)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid login",
			email:    email,
			password: password,
		},
		{
			name:     "Wrong password",
			email:    email,
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Non-existing user",
			email:    "notfound@example.com",
			password: password,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.NotNil(t, user.LastLogin)
			}
		})
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	email := "former@autoshop.local"
	password := "ChangeMe123!"
	user, _, err := authService.Register(email, password, "Yaw", "Asante", model.RoleTechnician)
	require.NoError(t, err)

	require.NoError(t, testDB.Model(user).Update("is_active", false).Error)

	// The password still matches, but a deactivated account cannot sign in
	_, _, err = authService.Login(email, password)
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user, _, err := authService.Register("tech@autoshop.local", "ChangeMe123!", "Yaw", "Asante", model.RoleTechnician)
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "Yaw", "Owusu")
	require.NoError(t, err)
	assert.Equal(t, "Owusu", updated.LastName)

	_, err = authService.UpdateProfile(9999, "Nobody", "Here")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ListTechnicians(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := authService.Register("tech@autoshop.local", "ChangeMe123!", "Yaw", "Asante", model.RoleTechnician)
	require.NoError(t, err)
	_, _, err = authService.Register("manager@autoshop.local", "ChangeMe123!", "Ama", "Mensah", model.RoleShopManager)
	require.NoError(t, err)

	technicians, err := authService.ListTechnicians()
	require.NoError(t, err)
	require.Len(t, technicians, 1)
	assert.Equal(t, model.RoleTechnician, technicians[0].Role)
}
