package domain

import "time"

// ProductCost representa o custo unitário de um produto, chaveado por SKU.
// Uma entrada por SKU; atualizações sobrescrevem a anterior (last-write-wins).
type ProductCost struct {
	SKU         string    `json:"sku"`
	ProductName string    `json:"product_name"`
	UnitCost    float64   `json:"unit_cost"`
	UpdatedAt   time.Time `json:"updated_at"`
}
