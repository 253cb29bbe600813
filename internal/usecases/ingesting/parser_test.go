package ingesting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrdersGroupsLineItems(t *testing.T) {
	input := strings.Join([]string{
		"Name,Created at,Total,Subtotal,Taxes,Shipping,Fulfillment Status,Lineitem sku,Lineitem name,Lineitem quantity,Lineitem price",
		"#1001,2024-01-02 10:15:00 -0300,150.00,130.00,5.00,15.00,fulfilled,SKU-A,Camiseta,2,50.00",
		"#1001,,,,,,,SKU-B,Caneca,1,30.00",
		"#1002,2024-01-03 09:00:00 -0300,80.00,70.00,2.00,8.00,unfulfilled,SKU-A,Camiseta,1,50.00",
	}, "\n")

	orders := ParseOrders(strings.NewReader(input))

	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "1001", first.ExternalID)
	assert.Equal(t, "#1001", first.Name)
	assert.Equal(t, 150.0, first.Total)
	assert.Equal(t, 15.0, first.Shipping)
	assert.Equal(t, "fulfilled", first.FulfillmentStatus)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "SKU-A", first.Items[0].SKU)
	assert.Equal(t, 2, first.Items[0].Quantity)
	assert.Equal(t, "SKU-B", first.Items[1].SKU)
	assert.Equal(t, 1, first.Items[1].Quantity)

	second := orders[1]
	assert.Equal(t, "1002", second.ExternalID)
	require.Len(t, second.Items, 1)
}

func TestParseOrdersSkipsRowsWithInvalidDate(t *testing.T) {
	input := strings.Join([]string{
		"Name,Created at,Total",
		"#1001,nao-e-data,100.00",
		"#1002,2024-01-03,80.00",
	}, "\n")

	orders := ParseOrders(strings.NewReader(input))

	require.Len(t, orders, 1)
	assert.Equal(t, "1002", orders[0].ExternalID)
}

func TestParseOrdersStripsCurrencySymbols(t *testing.T) {
	input := strings.Join([]string{
		"Name,Date,Total,Shipping",
		"#1001,2024-01-02,R$ 150.00,$15.00",
	}, "\n")

	orders := ParseOrders(strings.NewReader(input))

	require.Len(t, orders, 1)
	assert.Equal(t, 150.0, orders[0].Total)
	assert.Equal(t, 15.0, orders[0].Shipping)
}

func TestParseOrdersInvalidAmountBecomesZero(t *testing.T) {
	input := strings.Join([]string{
		"Name,Date,Total",
		"#1001,2024-01-02,abc",
	}, "\n")

	orders := ParseOrders(strings.NewReader(input))

	require.Len(t, orders, 1)
	assert.Equal(t, 0.0, orders[0].Total)
}

func TestParseOrdersEmptyAndMalformedInput(t *testing.T) {
	assert.Empty(t, ParseOrders(strings.NewReader("")))
	assert.Empty(t, ParseOrders(strings.NewReader("conteudo sem estrutura")))
	assert.Empty(t, ParseOrders(strings.NewReader("Name,Date,Total")))
}

func TestParseSalesRecords(t *testing.T) {
	input := strings.Join([]string{
		"Day,Gross sales,Discounts,Returns,Net sales,Shipping,Taxes,Total sales",
		"2024-01-02,500.00,20.00,10.00,470.00,30.00,15.00,515.00",
		"2024-01-03,300.00,0,0,300.00,20.00,10.00,330.00",
	}, "\n")

	records := ParseSalesRecords(strings.NewReader(input))

	require.Len(t, records, 2)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, 500.0, records[0].GrossSales)
	assert.Equal(t, 515.0, records[0].TotalSales)
	assert.Equal(t, 330.0, records[1].TotalSales)
}

func TestParseAdReports(t *testing.T) {
	input := strings.Join([]string{
		"Reporting starts,Campaign name,Amount spent (BRL),Impressions,Link clicks",
		"2024-01-02,Campanha Remarketing,120.50,10000,250",
		"2024-01-02,Campanha Frio,79.50,8000,120",
	}, "\n")

	reports := ParseAdReports(strings.NewReader(input))

	require.Len(t, reports, 2)
	assert.Equal(t, "Campanha Remarketing", reports[0].CampaignName)
	assert.Equal(t, 120.5, reports[0].Spend)
	assert.Equal(t, 10000, reports[0].Impressions)
	assert.Equal(t, 250, reports[0].Clicks)
}

func TestParseOrdersFractionalQuantityTruncated(t *testing.T) {
	input := strings.Join([]string{
		"Name,Date,Total,Lineitem sku,Lineitem quantity",
		"#1001,2024-01-02,100.00,SKU-A,2.5",
	}, "\n")

	orders := ParseOrders(strings.NewReader(input))

	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}

func TestParseAdReportsCountFormats(t *testing.T) {
	input := strings.Join([]string{
		"Day,Campaign,Spend,Impressions,Clicks",
		"2024-01-02,Campanha A,50.00,\"10,000\",n/a",
	}, "\n")

	reports := ParseAdReports(strings.NewReader(input))

	require.Len(t, reports, 1)
	assert.Equal(t, 10000, reports[0].Impressions)
	assert.Equal(t, 0, reports[0].Clicks)
}

func TestParseAdReportsAlternativeHeaders(t *testing.T) {
	input := strings.Join([]string{
		"Date,Campaign,Spend,Impressions,Clicks",
		"05/01/2024,Campanha A,50.00,1000,40",
	}, "\n")

	reports := ParseAdReports(strings.NewReader(input))

	require.Len(t, reports, 1)
	assert.Equal(t, 50.0, reports[0].Spend)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), reports[0].Date)
}
