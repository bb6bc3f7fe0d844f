package models

// Product is a single row of the B2B price list. Identity is the SKU. The
// catalog is loaded once per process and never mutated afterwards; the two
// price fields hold display strings and come out blank when the underlying
// value does not parse as a number.
type Product struct {
	RowID         uint   `json:"-" gorm:"column:row_id;primaryKey;autoIncrement"`
	SKU           string `json:"sku" gorm:"column:sku;uniqueIndex;type:varchar(64)"`
	Description   string `json:"description" gorm:"column:descrizione"`
	Brand         string `json:"brand" gorm:"column:marchio"`
	Category1     string `json:"category1" gorm:"column:categoria1"`
	Category2     string `json:"category2" gorm:"column:categoria2"`
	Category3     string `json:"category3" gorm:"column:categoria3"`
	SalePrice     string `json:"sale_price" gorm:"column:prezzo_vendita"`
	PublicPrice   string `json:"public_price" gorm:"column:prezzo_pubblico"`
	DatasheetLink string `json:"datasheet_link,omitempty" gorm:"column:link_icecat"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty" gorm:"column:thumb_url"`
}

// TableName maps the DB-backed catalog variant onto its table.
func (Product) TableName() string {
	return "catalog_rows"
}
