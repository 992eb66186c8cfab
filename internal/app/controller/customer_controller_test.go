package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCustomerControllerTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	customerRepo := repository.NewCustomerRepository(testDB)
	vehicleRepo := repository.NewVehicleRepository(testDB)
	customerService := service.NewCustomerService(customerRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, customerRepo)

	ctrl := NewCustomerController(customerService, vehicleService)

	router := gin.New()
	router.GET("/customers", ctrl.GetCustomers)
	router.GET("/customers/:id", ctrl.GetCustomerByID)
	router.GET("/customers/:id/vehicles", ctrl.GetCustomerVehicles)
	router.POST("/customers", ctrl.CreateCustomer)
	router.PUT("/customers/:id", ctrl.UpdateCustomer)
	router.DELETE("/customers/:id", ctrl.DeleteCustomer)

	return testDB, router
}

func createCustomerViaAPI(t *testing.T, router *gin.Engine, name, email, phone string) map[string]interface{} {
	body, _ := json.Marshal(CustomerRequest{
		Name:  name,
		Email: email,
		Phone: phone,
	})
	req := httptest.NewRequest("POST", "/customers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	customer, ok := response["customer"].(map[string]interface{})
	require.True(t, ok)
	return customer
}

func TestCustomerController_CreateCustomer(t *testing.T) {
	testDB, router := setupCustomerControllerTest(t)
	defer db.CleanupTestDB(testDB)

	customer := createCustomerViaAPI(t, router, "Ama Mensah", "ama@example.com", "0244-000-001")

	// The server assigns the customer number
	assert.Equal(t, "CUST-000001", customer["customer_number"])
	assert.Equal(t, "Ama Mensah", customer["name"])
	assert.Equal(t, true, customer["is_active"])
}

func TestCustomerController_CreateCustomer_InvalidRequest(t *testing.T) {
	testDB, router := setupCustomerControllerTest(t)
	defer db.CleanupTestDB(testDB)

	// Missing required phone
	body, _ := json.Marshal(CustomerRequest{
		Name:  "Ama Mensah",
		Email: "ama@example.com",
	})
	req := httptest.NewRequest("POST", "/customers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request data")
}

func TestCustomerController_GetCustomers(t *testing.T) {
	testDB, router := setupCustomerControllerTest(t)
	defer db.CleanupTestDB(testDB)

	createCustomerViaAPI(t, router, "Ama Mensah", "ama@example.com", "0244-000-001")
	createCustomerViaAPI(t, router, "Kofi Boateng", "kofi@example.com", "0244-000-002")

	req := httptest.NewRequest("GET", "/customers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["count"])

	// Search narrows the list
	req = httptest.NewRequest("GET", "/customers?search=Mensah", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestCustomerController_GetCustomerByID(t *testing.T) {
	testDB, router := setupCustomerControllerTest(t)
	defer db.CleanupTestDB(testDB)

	createCustomerViaAPI(t, router, "Ama Mensah", "ama@example.com", "0244-000-001")

	req := httptest.NewRequest("GET", "/customers/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CUST-000001")

	req = httptest.NewRequest("GET", "/customers/9999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest("GET", "/customers/not-a-number", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerController_UpdateCustomer(t *testing.T) {
	testDB, router := setupCustomerControllerTest(t)
	defer db.CleanupTestDB(testDB)

	createCustomerViaAPI(t, router, "Ama Mensah", "ama@example.com", "0244-000-001")

	body, _ := json.Marshal(CustomerRequest{
		Name:  "Ama Mensah-Owusu",
		Email: "ama@example.com",
		Phone: "0244-000-001",
	})
	req := httptest.NewRequest("PUT", "/customers/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ama Mensah-Owusu")

	req = httptest.NewRequest("PUT", "/customers/9999", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerController_DeleteCustomer(t *testing.T) {
	testDB, router := setupCustomerControllerTest(t)
	defer db.CleanupTestDB(testDB)

	createCustomerViaAPI(t, router, "Ama Mensah", "ama@example.com", "0244-000-001")

	req := httptest.NewRequest("DELETE", "/customers/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/customers/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
