package domain

import "time"

// SalesRecord representa uma linha do relatório de vendas da plataforma.
// É uma fonte de receita alternativa aos pedidos, com granularidade diária
// e sem detalhe por SKU.
type SalesRecord struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	GrossSales float64   `json:"gross_sales"`
	Discounts  float64   `json:"discounts"`
	Returns    float64   `json:"returns"`
	NetSales   float64   `json:"net_sales"`
	Shipping   float64   `json:"shipping"`
	Taxes      float64   `json:"taxes"`
	TotalSales float64   `json:"total_sales"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
