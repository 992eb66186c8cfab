package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupVehicleControllerTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	vehicleRepo := repository.NewVehicleRepository(testDB)
	customerRepo := repository.NewCustomerRepository(testDB)
	vehicleService := service.NewVehicleService(vehicleRepo, customerRepo)

	ctrl := NewVehicleController(vehicleService)

	router := gin.New()
	router.GET("/vehicles", ctrl.GetVehicles)
	router.GET("/vehicles/:id", ctrl.GetVehicleByID)
	router.POST("/vehicles", ctrl.CreateVehicle)
	router.PUT("/vehicles/:id", ctrl.UpdateVehicle)
	router.DELETE("/vehicles/:id", ctrl.DeleteVehicle)

	return testDB, router
}

func seedVehicleOwner(t *testing.T, testDB *gorm.DB) *model.Customer {
	customer := &model.Customer{
		Name:  "Ama Mensah",
		Email: "ama@example.com",
		Phone: "0244-000-001",
	}
	require.NoError(t, repository.NewCustomerRepository(testDB).Create(customer))
	return customer
}

func postVehicle(t *testing.T, router *gin.Engine, req VehicleRequest) *httptest.ResponseRecorder {
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest("POST", "/vehicles", bytes.NewBuffer(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)
	return w
}

func TestVehicleController_CreateVehicle(t *testing.T) {
	testDB, router := setupVehicleControllerTest(t)
	defer db.CleanupTestDB(testDB)

	customer := seedVehicleOwner(t, testDB)

	w := postVehicle(t, router, VehicleRequest{
		CustomerID:         customer.ID,
		RegistrationNumber: "GR-1234-22",
		Make:               "Toyota",
		Model:              "Corolla",
		Year:               2019,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "GR-1234-22")
}

func TestVehicleController_CreateVehicle_UnknownCustomer(t *testing.T) {
	testDB, router := setupVehicleControllerTest(t)
	defer db.CleanupTestDB(testDB)

	w := postVehicle(t, router, VehicleRequest{
		CustomerID:         9999,
		RegistrationNumber: "GR-1234-22",
		Make:               "Toyota",
		Model:              "Corolla",
		Year:               2019,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Customer does not exist")
}

func TestVehicleController_CreateVehicle_DuplicateRegistration(t *testing.T) {
	testDB, router := setupVehicleControllerTest(t)
	defer db.CleanupTestDB(testDB)

	customer := seedVehicleOwner(t, testDB)

	req := VehicleRequest{
		CustomerID:         customer.ID,
		RegistrationNumber: "GR-1234-22",
		Make:               "Toyota",
		Model:              "Corolla",
		Year:               2019,
	}
	w := postVehicle(t, router, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same registration again must surface as a conflict, not a 500
	req.Model = "Camry"
	w = postVehicle(t, router, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "VEHICLE_REGISTRATION_EXISTS")
}
