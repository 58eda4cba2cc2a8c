package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Purchase source enum values
const (
	PurchaseSourceOnlineStore = "online_store"
	PurchaseSourceMarketplace = "marketplace"
	PurchaseSourceRetailStore = "retail_store"
	PurchaseSourceDistributor = "distributor"
	PurchaseSourceOther       = "other"
)

// PurchaseSources lists the accepted purchase_source values in display order.
var PurchaseSources = []string{
	PurchaseSourceOnlineStore,
	PurchaseSourceMarketplace,
	PurchaseSourceRetailStore,
	PurchaseSourceDistributor,
	PurchaseSourceOther,
}

// Warranty is a registered product warranty. ExternalID is the only customer-facing handle.
type Warranty struct {
	gorm.Model
	ExternalID         string         `gorm:"size:20;uniqueIndex;not null" json:"external_id"`
	CustomerName       string         `gorm:"size:120;not null" json:"customer_name"`
	Email              string         `gorm:"size:160;index;not null" json:"email"`
	Mobile             string         `gorm:"size:20;not null" json:"mobile"`
	Address            string         `gorm:"type:text" json:"address"`
	City               string         `gorm:"size:80" json:"city"`
	Pincode            string         `gorm:"size:10" json:"pincode"`
	ProductName        string         `gorm:"size:160" json:"product_name"`
	ProductModel       string         `gorm:"size:120" json:"product_model"`
	PurchaseDate       datatypes.Date `gorm:"not null" json:"purchase_date"`
	PurchasePrice      float64        `gorm:"not null" json:"purchase_price"`
	PurchaseSource     string         `gorm:"size:30;not null" json:"purchase_source"`
	InvoiceURL         string         `gorm:"type:text;not null" json:"invoice_url"`
	InvoiceFileID      string         `gorm:"size:255" json:"invoice_file_id"`
	WarrantyCardURL    string         `gorm:"type:text;not null" json:"warranty_card_url"`
	WarrantyCardFileID string         `gorm:"size:255" json:"warranty_card_file_id"`
	WarrantyStatusID   uint           `gorm:"not null;index" json:"warranty_status_id"`
	RegistrationDate   time.Time      `gorm:"not null;index" json:"registration_date"`
	IsDeleted          bool           `gorm:"default:false" json:"is_deleted"`

	// Relations
	Status WarrantyStatus `gorm:"foreignKey:WarrantyStatusID" json:"status"`
}

func (Warranty) TableName() string {
	return "warranties"
}
