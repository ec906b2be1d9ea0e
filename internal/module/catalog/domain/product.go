package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ProductNameMinLen = 3
	ProductNameMaxLen = 250

	BarcodeMinLen = 8
	BarcodeMaxLen = 20
)

// PlaceholderProductName は外部検索が何も返さなかったときに使う商品名
const PlaceholderProductName = "Product not found"

// Product はカタログ全体で共有される正規の商品レコードです。
// バーコードで一意に識別され、作成後は本コアのフローでは不変です。
type Product struct {
	ID       uuid.UUID
	Name     string
	Barcodes []string
	SourceID uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct は商品作成の入力です
type NewProduct struct {
	Name     string
	Barcodes []string
	SourceID uuid.UUID
}

// Validate は商品作成入力の制約を確認します
func (p NewProduct) Validate() error {
	if l := len(p.Name); l < ProductNameMinLen || l > ProductNameMaxLen {
		return fmt.Errorf("product name must be %d-%d characters, got %d", ProductNameMinLen, ProductNameMaxLen, l)
	}
	if len(p.Barcodes) == 0 {
		return fmt.Errorf("product requires at least one barcode")
	}
	for _, barcode := range p.Barcodes {
		if l := len(barcode); l < BarcodeMinLen || l > BarcodeMaxLen {
			return fmt.Errorf("barcode must be %d-%d characters, got %q", BarcodeMinLen, BarcodeMaxLen, barcode)
		}
	}
	if p.SourceID == uuid.Nil {
		return fmt.Errorf("product requires a source")
	}
	return nil
}
