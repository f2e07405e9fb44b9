package main

import (
	"github.com/jemo-market/api/internal/config"
	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	seedCategories(stdLog)
	seedSettings(stdLog)
	seedDemoVendor(stdLog)

	stdLog.Printf("seed finished")
}

type stdLogger interface {
	Printf(format string, v ...interface{})
}

func seedCategories(stdLog stdLogger) {
	categories := []models.Category{
		{Slug: "electronics", Name: "Electronics", SortOrder: 1},
		{Slug: "fashion", Name: "Fashion", SortOrder: 2},
		{Slug: "home-living", Name: "Home & Living", SortOrder: 3},
		{Slug: "groceries", Name: "Groceries", SortOrder: 4},
		{Slug: "beauty", Name: "Beauty", SortOrder: 5},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("category already exists: %s", cat.Slug)
		}
	}
}

func seedSettings(stdLog stdLogger) {
	settings := []models.Setting{
		{
			Key: constants.SettingKeyDeliveryPricing,
			ValueJSON: models.JSON(map[string]interface{}{
				"same_city_fee":  "60",
				"other_city_fee": "150",
			}),
		},
		{
			Key: constants.SettingKeyWalletConfig,
			ValueJSON: models.JSON(map[string]interface{}{
				"min_withdrawal": "500",
			}),
		},
	}

	for _, setting := range settings {
		var existing models.Setting
		if err := models.DB.Where("key = ?", setting.Key).First(&existing).Error; err != nil {
			if err := models.DB.Create(&setting).Error; err != nil {
				stdLog.Printf("failed to create setting %s: %v", setting.Key, err)
			} else {
				stdLog.Printf("created setting: %s", setting.Key)
			}
		} else {
			stdLog.Printf("setting already exists: %s", setting.Key)
		}
	}
}

func seedDemoVendor(stdLog stdLogger) {
	const demoPhone = "+251900000001"

	var user models.User
	if err := models.DB.Where("phone = ?", demoPhone).First(&user).Error; err == nil {
		stdLog.Printf("demo vendor already exists: %s", demoPhone)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Printf("failed to hash demo vendor password: %v", err)
		return
	}

	user = models.User{
		Phone:        demoPhone,
		PasswordHash: string(hash),
		DisplayName:  "Demo Vendor",
		Role:         constants.RoleVendor,
		City:         "Addis Ababa",
		Status:       constants.UserStatusActive,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		stdLog.Printf("failed to create demo vendor user: %v", err)
		return
	}

	profile := models.VendorProfile{
		UserID:    user.ID,
		ShopName:  "Demo Shop",
		City:      "Addis Ababa",
		KycStatus: constants.KycStatusApproved,
	}
	if err := models.DB.Create(&profile).Error; err != nil {
		stdLog.Printf("failed to create demo vendor profile: %v", err)
		return
	}

	var electronics models.Category
	var categoryID *uint
	if err := models.DB.Where("slug = ?", "electronics").First(&electronics).Error; err == nil {
		categoryID = &electronics.ID
	}

	price, err := models.NewMoneyFromString("1200")
	if err != nil {
		stdLog.Printf("failed to parse demo product price: %v", err)
		return
	}
	product := models.Product{
		VendorID:     profile.ID,
		CategoryID:   categoryID,
		Title:        "Demo Bluetooth Speaker",
		Description:  "Portable speaker seeded for local development.",
		Price:        price,
		Stock:        25,
		Active:       true,
		DeliveryType: constants.DeliveryMethodJemoRider,
	}
	if err := models.DB.Create(&product).Error; err != nil {
		stdLog.Printf("failed to create demo product: %v", err)
		return
	}

	stdLog.Printf("created demo vendor %s with one product", demoPhone)
}
