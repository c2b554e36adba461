package migrations

import (
	"fmt"
	"log"

	"job_order/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedProducts = []models.Product{
	{ProductName: "1 KG PET BOX", Description: "PET box for 1 kg packaging"},
	{ProductName: "1/4 KG PET BOX", Description: "PET box for 1/4 kg packaging"},
	{ProductName: "2C PRINTED POLYBAG", Description: "2 color printed polybag"},
	{ProductName: "3 COLOUR PRINTED BAG", Description: "3 color printed bag"},
	{ProductName: "4 COLOUR PRINTED BAG", Description: "4 color printed bag"},
	{ProductName: "BLACK LDPE POLYBAG", Description: "Black LDPE polybag"},
	{ProductName: "AUSTRALIAN MANS POLY SHEET", Description: "Australian mans poly sheet"},
	{ProductName: "TRANSPARENT POLYBAG", Description: "Transparent polybag"},
	{ProductName: "ZIPPER POUCH", Description: "Zipper pouch for packaging"},
	{ProductName: "STAND UP POUCH", Description: "Stand up pouch"},
}

var seedCustomers = []models.Customer{
	{CustomerName: "AATREYA EXPORT", MobileNo: "9876543210", Address: "Chennai, Tamil Nadu"},
	{CustomerName: "ABARNA EXPORTS", MobileNo: "9876543211", Address: "Coimbatore, Tamil Nadu"},
	{CustomerName: "FABRIC SOLUTIONS INC", MobileNo: "9876543212", Address: "Bangalore, Karnataka"},
	{CustomerName: "A.K.R GARMENTS", MobileNo: "9876543213", Address: "Tirupur, Tamil Nadu"},
	{CustomerName: "TEXTILE TRADERS", MobileNo: "9876543214", Address: "Mumbai, Maharashtra"},
	{CustomerName: "GLOBAL PACKAGING", MobileNo: "9876543215", Address: "Delhi, NCR"},
	{CustomerName: "MODERN PLASTICS", MobileNo: "9876543216", Address: "Pune, Maharashtra"},
	{CustomerName: "SUPREME EXPORTS", MobileNo: "9876543217", Address: "Hyderabad, Telangana"},
}

// RunMigrations creates the schema and inserts the lookup data. With reset
// set, existing tables are dropped first.
func RunMigrations(db *gorm.DB, reset bool) error {
	log.Println("Running database migrations...")

	if reset {
		log.Println("Dropping existing tables...")
		// children first so the foreign key does not block the drop
		if err := db.Migrator().DropTable(&models.OrderDetail{}, &models.OrderHead{}, &models.Product{}, &models.Customer{}, &models.Measurement{}); err != nil {
			log.Printf("Warning: Error dropping tables: %v", err)
		}
	}

	log.Println("Creating tables...")
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	if err := seedDefaults(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func seedDefaults(db *gorm.DB) error {
	measurements := make([]models.Measurement, 0, 4)
	for _, name := range []string{"INCH", "CM", "MM", "METER"} {
		measurements = append(measurements, models.Measurement{MeasurementName: name, IsActive: true})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&measurements).Error; err != nil {
		return fmt.Errorf("failed to seed measurements: %w", err)
	}

	products := make([]models.Product, len(seedProducts))
	copy(products, seedProducts)
	for i := range products {
		products[i].IsActive = true
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "ProductName"}},
		DoUpdates: clause.AssignmentColumns([]string{"Description"}),
	}
	if err := db.Clauses(upsert).Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	// customers have no unique key, so only seed an empty table
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count customers: %w", err)
	}
	if count == 0 {
		customers := make([]models.Customer, len(seedCustomers))
		copy(customers, seedCustomers)
		for i := range customers {
			customers[i].IsActive = true
		}
		if err := db.Create(&customers).Error; err != nil {
			return fmt.Errorf("failed to seed customers: %w", err)
		}
	}

	log.Printf("Seeded %d measurements, %d products, %d customers", len(measurements), len(seedProducts), len(seedCustomers))
	return nil
}
