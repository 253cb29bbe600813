package domain

import "time"

// OrderItem representa um item de linha de um pedido. O SKU é a chave de junção
// com a tabela de custos por produto.
type OrderItem struct {
	SKU       string  `json:"sku"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order representa um pedido importado do export CSV da loja.
type Order struct {
	ID                string      `json:"id"`
	ExternalID        string      `json:"external_id"`
	Name              string      `json:"name"`
	Date              time.Time   `json:"date"`
	Total             float64     `json:"total"`
	Subtotal          float64     `json:"subtotal"`
	Tax               float64     `json:"tax"`
	Shipping          float64     `json:"shipping"`
	FulfillmentStatus string      `json:"fulfillment_status"`
	Items             []OrderItem `json:"items"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
