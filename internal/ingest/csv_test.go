package ingest

import (
	"strings"
	"testing"
)

const shortlistCSV = `SKU ID,SKU Name,Brand,Category,Target Market,Primary Channel,Local List Price (calc),Landed Cost (calc),Consumer Trend,Regulatory Eligible,IP Risk High,MOQ
SKU-001,Collagen Sachet,GlowCo,Supplements,Nepal,E-Com,100,40,5,Yes,No,500
,Subtotal,,,,,,,,,,
SKU-002,Herbal Balm,,Topicals,India,GT,55.5,20,3,,Yes,
`

func TestExtractHeaders(t *testing.T) {
	headers, err := ExtractHeaders(strings.NewReader(" SKU ID ,SKU Name,Brand\n1,2,3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"SKU ID", "SKU Name", "Brand"}
	if len(headers) != len(want) {
		t.Fatalf("got %d headers, want %d", len(headers), len(want))
	}
	for i := range want {
		if headers[i] != want[i] {
			t.Fatalf("header %d = %q, want %q", i, headers[i], want[i])
		}
	}
}

func TestParseSkus_TypedCoercion(t *testing.T) {
	skus, err := ParseSkus(strings.NewReader(shortlistCSV), nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skus) != 2 {
		t.Fatalf("got %d skus, want 2 (subtotal row skipped)", len(skus))
	}

	first := skus[0]
	if first.SkuID != "SKU-001" || first.SkuName != "Collagen Sachet" {
		t.Fatalf("identity mismatch: %+v", first)
	}
	if first.LocalListPrice != 100 || first.LandedCost != 40 {
		t.Fatalf("pricing mismatch: %+v", first)
	}
	if first.ScoreConsumerTrend != 5 || first.MOQ != 500 {
		t.Fatalf("numeric mismatch: %+v", first)
	}
	if first.RegulatoryEligible == nil || !*first.RegulatoryEligible {
		t.Fatal("Yes must parse as true")
	}
	if first.IPRiskHigh == nil || *first.IPRiskHigh {
		t.Fatal("No must parse as explicit false")
	}

	second := skus[1]
	if second.RegulatoryEligible != nil {
		t.Fatal("blank gate cell must stay unset")
	}
	if second.IPRiskHigh == nil || !*second.IPRiskHigh {
		t.Fatal("Yes must parse as true for ip risk")
	}
	if second.MOQ != 0 {
		t.Fatalf("blank MOQ must coerce to 0, got %d", second.MOQ)
	}
	if second.LocalListPrice != 55.5 {
		t.Fatalf("float price mismatch: %v", second.LocalListPrice)
	}
}

func TestParseSkus_ColumnMapping(t *testing.T) {
	csv := "Code,Product,Market\nSKU-9,Gummies,UAE\n"
	mapping := map[string]string{
		ColSkuID:        "Code",
		ColSkuName:      "Product",
		ColTargetMarket: "Market",
	}

	skus, err := ParseSkus(strings.NewReader(csv), mapping, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skus) != 1 {
		t.Fatalf("got %d skus, want 1", len(skus))
	}
	if skus[0].SkuID != "SKU-9" || skus[0].SkuName != "Gummies" || skus[0].TargetMarket != "UAE" {
		t.Fatalf("mapping not applied: %+v", skus[0])
	}
}

func TestParseSkus_DefaultMarketOverrides(t *testing.T) {
	csv := "SKU ID,SKU Name,Target Market\nSKU-1,Balm,India\nSKU-2,Oil,\n"
	skus, err := ParseSkus(strings.NewReader(csv), nil, "Nepal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sku := range skus {
		if sku.TargetMarket != "Nepal" {
			t.Fatalf("sku %s kept market %q, want Nepal", sku.SkuID, sku.TargetMarket)
		}
	}
}

func TestParseSkus_MalformedNumberRejects(t *testing.T) {
	csv := "SKU ID,SKU Name,MOQ\nSKU-1,Balm,lots\n"
	if _, err := ParseSkus(strings.NewReader(csv), nil, ""); err == nil {
		t.Fatal("expected error for malformed integer cell")
	}
}

func TestParseSkus_CaseInsensitiveYes(t *testing.T) {
	csv := "SKU ID,SKU Name,Supply Ready\nSKU-1,Balm,YES\nSKU-2,Oil,maybe\n"
	skus, err := ParseSkus(strings.NewReader(csv), nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skus[0].SupplyReady == nil || !*skus[0].SupplyReady {
		t.Fatal("YES must parse as true")
	}
	if skus[1].SupplyReady == nil || *skus[1].SupplyReady {
		t.Fatal("non-yes text must parse as explicit false")
	}
}
