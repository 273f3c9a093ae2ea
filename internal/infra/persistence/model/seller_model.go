package model

import (
	"time"

	"github.com/google/uuid"
)

// SellerModel mirrors the 'sellers' table. Sellers are a credential store
// separate from users, with their own email uniqueness.
type SellerModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	Name             string    `gorm:"type:varchar(100);not null"`
	Email            string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	Phone            string    `gorm:"type:varchar(32)"`
	Address          string    `gorm:"type:varchar(255)"`
	City             string    `gorm:"type:varchar(100)"`
	State            string    `gorm:"type:varchar(100)"`
	Zip              string    `gorm:"type:varchar(20)"`
	Country          string    `gorm:"type:varchar(100)"`
	RefreshTokenHash *string   `gorm:"type:varchar(64)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Products []ProductModel `gorm:"foreignKey:SellerID"`
}

// TableName explicitly sets the table name for GORM.
func (SellerModel) TableName() string {
	return "sellers"
}
