package database

import (
	"fmt"
	"log"
	"os"

	"bijoux-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=bijoux_store port=5432 sslmode=disable"
	}

	// TranslateError maps driver unique-violation errors to
	// gorm.ErrDuplicatedKey; the cart merge path relies on it.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	// No DB-level foreign keys: the catalog is maintained by an external
	// admin process and the API must tolerate dangling references (a cart
	// line whose product is gone, gemstone ids that resolve to nothing).
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Gemstone{},
		&models.Material{},
		&models.Product{},
		&models.ProductImage{},
		&models.Inventory{},
		&models.CartItem{},
	); err != nil {
		return err
	}

	return nil
}

// SeedDemoCatalog populates a small jewelry catalog when SEED_DEMO_DATA=true
// and the store is empty. Safe to run repeatedly.
func SeedDemoCatalog(db *gorm.DB) error {
	if os.Getenv("SEED_DEMO_DATA") != "true" {
		return nil
	}

	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		// Catalog already populated
		return nil
	}

	rings := models.Category{Name: "Rings", Description: "Rings for every occasion", Slug: "rings"}
	if err := db.Create(&rings).Error; err != nil {
		return err
	}
	engagement := models.Category{Name: "Engagement Rings", Description: "Rings to say yes to", Slug: "engagement-rings", ParentID: &rings.ID}
	necklaces := models.Category{Name: "Necklaces", Description: "Pendants and chains", Slug: "necklaces"}
	if err := db.Create(&engagement).Error; err != nil {
		return err
	}
	if err := db.Create(&necklaces).Error; err != nil {
		return err
	}

	diamond := models.Gemstone{Name: "Diamond", Description: "Brilliant-cut diamond", Color: "Colorless", Carat: 1.2, Clarity: "VS1", Cut: "Brilliant", Origin: "Botswana", Certification: "GIA"}
	sapphire := models.Gemstone{Name: "Sapphire", Description: "Deep blue sapphire", Color: "Blue", Carat: 0.8, Origin: "Sri Lanka"}
	if err := db.Create(&diamond).Error; err != nil {
		return err
	}
	if err := db.Create(&sapphire).Error; err != nil {
		return err
	}

	karat := 18
	gold := models.Material{Name: "Yellow Gold", Description: "18k yellow gold", Purity: "750", Karat: &karat}
	platinum := models.Material{Name: "Platinum", Description: "Platinum 950", Purity: "950"}
	if err := db.Create(&gold).Error; err != nil {
		return err
	}
	if err := db.Create(&platinum).Error; err != nil {
		return err
	}

	solitaire := models.Product{
		Name:        "Classic Solitaire Ring",
		Description: "A timeless solitaire with a brilliant-cut diamond on an 18k gold band.",
		Price:       2450,
		SKU:         "BJX-RING-0001",
		CategoryID:  engagement.ID,
		Featured:    true,
		Slug:        "classic-solitaire-ring",
		GemstoneIDs: models.EncodeIDList(diamond.ID),
		MaterialIDs: models.EncodeIDList(gold.ID),
	}
	pendant := models.Product{
		Name:        "Sapphire Halo Pendant",
		Description: "Blue sapphire framed by pave stones on a platinum chain.",
		Price:       1280,
		SKU:         "BJX-NECK-0001",
		CategoryID:  necklaces.ID,
		Featured:    false,
		Slug:        "sapphire-halo-pendant",
		GemstoneIDs: models.EncodeIDList(sapphire.ID),
		MaterialIDs: models.EncodeIDList(platinum.ID),
	}
	if err := db.Create(&solitaire).Error; err != nil {
		return err
	}
	if err := db.Create(&pendant).Error; err != nil {
		return err
	}

	images := []models.ProductImage{
		{ProductID: solitaire.ID, URL: "https://cdn.example.com/products/solitaire-front.jpg", Alt: "Classic Solitaire Ring", IsPrimary: true, SortOrder: 0},
		{ProductID: solitaire.ID, URL: "https://cdn.example.com/products/solitaire-side.jpg", Alt: "Classic Solitaire Ring, side view", SortOrder: 1},
		{ProductID: pendant.ID, URL: "https://cdn.example.com/products/pendant-front.jpg", Alt: "Sapphire Halo Pendant", IsPrimary: true, SortOrder: 0},
	}
	if err := db.Create(&images).Error; err != nil {
		return err
	}

	stock := []models.Inventory{
		{ProductID: solitaire.ID, Quantity: 4, LowStockThreshold: 2},
		{ProductID: pendant.ID, Quantity: 12, LowStockThreshold: 3},
	}
	if err := db.Create(&stock).Error; err != nil {
		return err
	}

	log.Println("Demo catalog seeded")
	return nil
}
