package repository

import "gorm.io/gorm"

// AutoMigrate keeps the schema in sync with the repository models. Run from
// cmd/seed; production deployments migrate out of band.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&facilityModel{},
		&fieldModel{},
		&customerModel{},
		&pricingRuleModel{},
		&slotModel{},
		&bookingModel{},
		&orderModel{},
		&orderFieldModel{},
	)
}
