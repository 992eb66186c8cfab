package db

import (
	"github.com/gearboxhq/autoshop-backend/internal/app/model"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"github.com/gearboxhq/autoshop-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Customer{},
		&model.Vehicle{},
		&model.Bay{},
		&model.Category{},
		&model.Supplier{},
		&model.Service{},
		&model.Part{},
		&model.Appointment{},
		&model.Estimate{},
		&model.EstimateItem{},
		&model.WorkOrder{},
		&model.WorkOrderItem{},
		&model.Invoice{},
		&model.Payment{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedAdminUser(); err != nil {
		logger.Error("Failed to seed admin user", err)
		return err
	}

	if err := seedBays(); err != nil {
		logger.Error("Failed to seed bays", err)
		return err
	}

	if err := seedCategories(); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedAdminUser creates the bootstrap super admin account if no users exist.
func seedAdminUser() error {
	var count int64
	if err := DB.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Users already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	hash, err := util.HashPassword("ChangeMe123!")
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        "admin@autoshop.local",
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Admin",
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Admin user seeded successfully", map[string]interface{}{
		"email": admin.Email,
	})
	return nil
}

// seedBays creates a default set of work bays.
func seedBays() error {
	var count int64
	if err := DB.Model(&model.Bay{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Bays already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	bays := []model.Bay{
		{BayNumber: "B1", Name: "General Bay 1", BayType: "general", Status: model.BayAvailable},
		{BayNumber: "B2", Name: "General Bay 2", BayType: "general", Status: model.BayAvailable},
		{BayNumber: "B3", Name: "Lift Bay", BayType: "lift", Status: model.BayAvailable, HasLift: true},
		{BayNumber: "B4", Name: "Alignment Bay", BayType: "alignment", Status: model.BayAvailable, HasLift: true},
		{BayNumber: "B5", Name: "Diagnostic Bay", BayType: "diagnostic", Status: model.BayAvailable},
	}

	totalInserted := 0
	for _, bay := range bays {
		if err := DB.Create(&bay).Error; err != nil {
			logger.Error("Failed to create bay", err, map[string]interface{}{
				"bay_number": bay.BayNumber,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Bays seeded successfully", map[string]interface{}{
		"total_bays": totalInserted,
	})
	return nil
}

// seedCategories creates top-level service and part categories.
func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	categories := []model.Category{
		{Name: "Maintenance", CategoryType: model.CategoryService, DisplayOrder: 1},
		{Name: "Repair", CategoryType: model.CategoryService, DisplayOrder: 2},
		{Name: "Diagnostics", CategoryType: model.CategoryService, DisplayOrder: 3},
		{Name: "Bodywork", CategoryType: model.CategoryService, DisplayOrder: 4},
		{Name: "Engine", CategoryType: model.CategoryPart, DisplayOrder: 1},
		{Name: "Brakes", CategoryType: model.CategoryPart, DisplayOrder: 2},
		{Name: "Suspension", CategoryType: model.CategoryPart, DisplayOrder: 3},
		{Name: "Electrical", CategoryType: model.CategoryPart, DisplayOrder: 4},
		{Name: "Filters & Fluids", CategoryType: model.CategoryPart, DisplayOrder: 5},
	}

	totalInserted := 0
	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": category.Name,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_categories": totalInserted,
	})
	return nil
}
