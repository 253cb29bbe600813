package domain

import "time"

// Expense representa uma despesa manual lançada pelo lojista (aluguel,
// embalagem, ferramentas etc). Despesas não são filtradas por período no
// cálculo do resumo: são tratadas como totais independentes de data.
type Expense struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
