package models

import (
	"time"

	"github.com/google/uuid"
)

// DistributorSubscription binds a user and their business details to a
// package for a date range. Active means now falls inside [StartDate, EndDate).
type DistributorSubscription struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	PackageID       uuid.UUID           `gorm:"column:package_id;type:uuid;not null"`
	BusinessName    string              `gorm:"column:business_name;not null"`
	BusinessType    string              `gorm:"column:business_type;not null"`
	BusinessAddress string              `gorm:"column:business_address;not null"`
	ContactPerson   string              `gorm:"column:contact_person;not null"`
	ContactNumber   string              `gorm:"column:contact_number;not null"`
	StartDate       time.Time           `gorm:"column:start_date;not null"`
	EndDate         time.Time           `gorm:"column:end_date;not null"`
	Package         *DistributorPackage `gorm:"foreignKey:PackageID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
