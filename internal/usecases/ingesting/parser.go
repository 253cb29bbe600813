package ingesting

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pvilarim/ecomdash-api/internal/domain"
)

// Layouts de data aceitos nos exports. Os exports da loja usam timestamp
// completo, os relatórios de vendas e anúncios usam só a data.
var dateLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05Z07:00",
	time.DateOnly,
	"02/01/2006",
	"01/02/2006",
}

// Aliases de cabeçalho por campo. Os exports variam entre plataformas e
// versões, então o lookup é feito por nome normalizado com alternativas.
var (
	orderHeaderAliases = map[string][]string{
		"name":               {"name", "order", "order name", "pedido"},
		"date":               {"created at", "date", "day", "data"},
		"total":              {"total", "total price", "amount"},
		"subtotal":           {"subtotal", "subtotal price"},
		"tax":                {"taxes", "tax", "total tax"},
		"shipping":           {"shipping", "shipping price", "frete"},
		"fulfillment_status": {"fulfillment status", "status"},
		"item_sku":           {"lineitem sku", "sku", "variant sku"},
		"item_title":         {"lineitem name", "product title", "product name", "item name"},
		"item_quantity":      {"lineitem quantity", "quantity", "qty"},
		"item_price":         {"lineitem price", "price", "unit price"},
	}

	salesHeaderAliases = map[string][]string{
		"date":        {"day", "date", "data"},
		"gross_sales": {"gross sales", "gross", "vendas brutas"},
		"discounts":   {"discounts", "discount", "descontos"},
		"returns":     {"returns", "refunds", "devolucoes"},
		"net_sales":   {"net sales", "net", "vendas liquidas"},
		"shipping":    {"shipping", "shipping charges", "frete"},
		"taxes":       {"taxes", "tax", "impostos"},
		"total_sales": {"total sales", "total", "vendas totais"},
	}

	adHeaderAliases = map[string][]string{
		"date":        {"day", "date", "reporting starts", "data"},
		"campaign":    {"campaign name", "campaign", "campanha"},
		"spend":       {"amount spent", "amount spent (brl)", "amount spent (usd)", "spend", "cost", "valor gasto"},
		"impressions": {"impressions", "impressoes"},
		"clicks":      {"clicks", "link clicks", "cliques"},
	}
)

// headerIndex mapeia os nomes normalizados do cabeçalho para a posição da
// coluna. A normalização remove espaços nas pontas e coloca em minúsculas.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if _, ok := index[normalized]; !ok {
			index[normalized] = i
		}
	}
	return index
}

// fieldValue busca o valor de um campo na linha tentando cada alias na ordem.
func fieldValue(row []string, index map[string]int, aliases []string) string {
	for _, alias := range aliases {
		if pos, ok := index[alias]; ok && pos < len(row) {
			return strings.TrimSpace(row[pos])
		}
	}
	return ""
}

// parseAmount converte um valor monetário do CSV em float64. Símbolos de
// moeda e separadores de milhar são descartados; valor inválido vira zero.
func parseAmount(value string) float64 {
	cleaned := strings.NewReplacer("R$", "", "$", "", "€", "", ",", "", " ", "").Replace(value)
	if cleaned == "" {
		return 0
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}

// parseCount converte uma contagem do CSV em int. Separadores de milhar são
// descartados, quantidades fracionárias são truncadas e valor inválido vira zero.
func parseCount(value string) int {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(value)
	if cleaned == "" {
		return 0
	}

	if count, err := strconv.Atoi(cleaned); err == nil {
		return count
	}

	if fraction, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return int(fraction)
	}

	return 0
}

// parseRowDate tenta os layouts conhecidos na ordem. Retorna false quando
// nenhum casa; a linha é descartada pelo chamador.
func parseRowDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// readRows lê todas as linhas do CSV e devolve cabeçalho e linhas de dados.
// Entrada vazia ou ilegível resulta em zero linhas, nunca em pânico: o
// upload de um arquivo malformado simplesmente não importa nada.
func readRows(file io.Reader) (map[string]int, [][]string) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var header map[string]int
	var rows [][]string

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Linha quebrada não derruba a importação das demais.
			continue
		}
		if header == nil {
			header = headerIndex(row)
			continue
		}
		rows = append(rows, row)
	}

	return header, rows
}

// ParseOrders interpreta o export de pedidos da loja. Os itens de linha vêm
// em linhas separadas agrupadas pelo nome do pedido: a primeira linha do
// grupo carrega os totais e as seguintes só os campos de item.
func ParseOrders(file io.Reader) []*domain.Order {
	header, rows := readRows(file)
	if header == nil {
		return nil
	}

	var orders []*domain.Order
	byName := make(map[string]*domain.Order)

	for _, row := range rows {
		name := fieldValue(row, header, orderHeaderAliases["name"])
		if name == "" {
			continue
		}

		item := parseOrderItem(row, header)

		if existing, ok := byName[name]; ok {
			// Linha de continuação: só acrescenta o item ao pedido aberto.
			if item != nil {
				existing.Items = append(existing.Items, *item)
			}
			continue
		}

		date, ok := parseRowDate(fieldValue(row, header, orderHeaderAliases["date"]))
		if !ok {
			continue
		}

		order := &domain.Order{
			ExternalID:        strings.TrimPrefix(name, "#"),
			Name:              name,
			Date:              date,
			Total:             parseAmount(fieldValue(row, header, orderHeaderAliases["total"])),
			Subtotal:          parseAmount(fieldValue(row, header, orderHeaderAliases["subtotal"])),
			Tax:               parseAmount(fieldValue(row, header, orderHeaderAliases["tax"])),
			Shipping:          parseAmount(fieldValue(row, header, orderHeaderAliases["shipping"])),
			FulfillmentStatus: fieldValue(row, header, orderHeaderAliases["fulfillment_status"]),
		}
		if item != nil {
			order.Items = append(order.Items, *item)
		}

		byName[name] = order
		orders = append(orders, order)
	}

	return orders
}

func parseOrderItem(row []string, header map[string]int) *domain.OrderItem {
	sku := fieldValue(row, header, orderHeaderAliases["item_sku"])
	title := fieldValue(row, header, orderHeaderAliases["item_title"])
	quantity := parseCount(fieldValue(row, header, orderHeaderAliases["item_quantity"]))

	if sku == "" && title == "" {
		return nil
	}
	if quantity == 0 {
		quantity = 1
	}

	return &domain.OrderItem{
		SKU:       sku,
		Title:     title,
		Quantity:  quantity,
		UnitPrice: parseAmount(fieldValue(row, header, orderHeaderAliases["item_price"])),
	}
}

// ParseSalesRecords interpreta o relatório diário de vendas da plataforma.
func ParseSalesRecords(file io.Reader) []*domain.SalesRecord {
	header, rows := readRows(file)
	if header == nil {
		return nil
	}

	var records []*domain.SalesRecord
	for _, row := range rows {
		date, ok := parseRowDate(fieldValue(row, header, salesHeaderAliases["date"]))
		if !ok {
			continue
		}

		records = append(records, &domain.SalesRecord{
			Date:       date,
			GrossSales: parseAmount(fieldValue(row, header, salesHeaderAliases["gross_sales"])),
			Discounts:  parseAmount(fieldValue(row, header, salesHeaderAliases["discounts"])),
			Returns:    parseAmount(fieldValue(row, header, salesHeaderAliases["returns"])),
			NetSales:   parseAmount(fieldValue(row, header, salesHeaderAliases["net_sales"])),
			Shipping:   parseAmount(fieldValue(row, header, salesHeaderAliases["shipping"])),
			Taxes:      parseAmount(fieldValue(row, header, salesHeaderAliases["taxes"])),
			TotalSales: parseAmount(fieldValue(row, header, salesHeaderAliases["total_sales"])),
		})
	}

	return records
}

// ParseAdReports interpreta o relatório de investimento em anúncios
// (uma linha por campanha por dia).
func ParseAdReports(file io.Reader) []*domain.AdReport {
	header, rows := readRows(file)
	if header == nil {
		return nil
	}

	var reports []*domain.AdReport
	for _, row := range rows {
		date, ok := parseRowDate(fieldValue(row, header, adHeaderAliases["date"]))
		if !ok {
			continue
		}

		reports = append(reports, &domain.AdReport{
			Date:         date,
			CampaignName: fieldValue(row, header, adHeaderAliases["campaign"]),
			Spend:        parseAmount(fieldValue(row, header, adHeaderAliases["spend"])),
			Impressions:  parseCount(fieldValue(row, header, adHeaderAliases["impressions"])),
			Clicks:       parseCount(fieldValue(row, header, adHeaderAliases["clicks"])),
		})
	}

	return reports
}
