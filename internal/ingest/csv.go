// Package ingest turns an uploaded shortlist CSV into SkuRecords. It is the
// one place that coerces spreadsheet text into typed values; the engine
// downstream trusts whatever lands here.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sku_scorecard/internal/engine"
)

// Canonical column names as they appear in the planning team's workbook.
// An upload whose headers differ supplies a mapping from these names to its
// own headers.
const (
	ColSkuID          = "SKU ID"
	ColSkuName        = "SKU Name"
	ColBrand          = "Brand"
	ColCategory       = "Category"
	ColTargetMarket   = "Target Market"
	ColPrimaryChannel = "Primary Channel"
	ColListPrice      = "Local List Price (calc)"
	ColLandedCost     = "Landed Cost (calc)"
	ColRampMonth      = "Ramp Month (1-4+)"
	ColRegEligible    = "Regulatory Eligible"
	ColRegProhibition = "Regulatory Prohibition"
	ColIPRiskHigh     = "IP Risk High"
	ColSupplyReady    = "Supply Ready"
	ColMOQ            = "MOQ"
	ColLeadTime       = "Lead Time (days)"
	ColShelfLife      = "Shelf Life (months)"
	ColPortfolioPass  = "Pass: Portfolio Balance (manual)"
	ColLaunchWave     = "Suggested Launch Wave"
)

var ratingColumns = [15]string{
	"Consumer Trend", "Point of Diff", "Channel Suitability", "Strategic Role", "Marketing Leverage",
	"Price Ladder", "Usage Occasion", "Channel Diff", "Story Cohesion", "Operational Synergy",
	"Regulatory Delay", "Retail Listing", "Competitive", "Supply Chain", "Price War",
}

// ExtractHeaders reads just the header row of an upload, trimmed, so the
// client can offer a column-mapping picker before committing to a parse.
func ExtractHeaders(r io.Reader) ([]string, error) {
	record, err := csv.NewReader(r).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	headers := make([]string, len(record))
	for i, h := range record {
		headers[i] = strings.TrimSpace(h)
	}
	return headers, nil
}

// row gives typed access to one CSV line through the column mapping.
type row struct {
	byHeader map[string]string
	mapping  map[string]string
}

// get looks a canonical column up, honoring the mapping. Missing columns
// and blank cells both come back as "".
func (r row) get(canonical string) string {
	header := canonical
	if mapped, ok := r.mapping[canonical]; ok && mapped != "" {
		header = mapped
	}
	return strings.TrimSpace(r.byHeader[header])
}

// yesNo reads a nullable gate cell: blank stays nil, anything else is
// compared case-insensitively against "yes".
func (r row) yesNo(canonical string) *bool {
	raw := r.get(canonical)
	if raw == "" {
		return nil
	}
	v := strings.EqualFold(raw, "yes")
	return &v
}

func (r row) intOr(canonical string, rowNum int) (int, error) {
	raw := r.get(canonical)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("row %d: column %q: invalid integer %q", rowNum, canonical, raw)
	}
	return v, nil
}

func (r row) floatOr(canonical string, rowNum int) (float64, error) {
	raw := r.get(canonical)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: column %q: invalid number %q", rowNum, canonical, raw)
	}
	return v, nil
}

// ParseSkus reads the whole CSV into SkuRecords. Rows without a SKU id or
// name are skipped (subtotal and banner rows in real exports). When
// defaultMarket is non-empty it overrides the row's target market, matching
// the single-market upload flow. Malformed numeric cells reject the upload;
// absence never does.
func ParseSkus(r io.Reader, mapping map[string]string, defaultMarket string) ([]engine.SkuRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var skus []engine.SkuRecord
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+1, err)
		}
		rowNum++

		byHeader := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				byHeader[h] = record[i]
			}
		}
		line := row{byHeader: byHeader, mapping: mapping}

		skuID := line.get(ColSkuID)
		if skuID == "" || line.get(ColSkuName) == "" {
			continue
		}

		sku := engine.SkuRecord{
			SkuID:          skuID,
			SkuName:        line.get(ColSkuName),
			Brand:          line.get(ColBrand),
			Category:       line.get(ColCategory),
			TargetMarket:   line.get(ColTargetMarket),
			PrimaryChannel: line.get(ColPrimaryChannel),

			RegulatoryEligible:    line.yesNo(ColRegEligible),
			RegulatoryProhibition: line.yesNo(ColRegProhibition),
			IPRiskHigh:            line.yesNo(ColIPRiskHigh),
			SupplyReady:           line.yesNo(ColSupplyReady),

			PassPortfolioBalance: line.yesNo(ColPortfolioPass),
			SuggestedLaunchWave:  line.get(ColLaunchWave),
		}
		if defaultMarket != "" {
			sku.TargetMarket = defaultMarket
		}

		if sku.LocalListPrice, err = line.floatOr(ColListPrice, rowNum); err != nil {
			return nil, err
		}
		if sku.LandedCost, err = line.floatOr(ColLandedCost, rowNum); err != nil {
			return nil, err
		}
		if sku.MOQ, err = line.intOr(ColMOQ, rowNum); err != nil {
			return nil, err
		}
		if sku.LeadTimeDays, err = line.intOr(ColLeadTime, rowNum); err != nil {
			return nil, err
		}
		if sku.ShelfLifeMonths, err = line.intOr(ColShelfLife, rowNum); err != nil {
			return nil, err
		}
		if sku.RampMonth, err = line.intOr(ColRampMonth, rowNum); err != nil {
			return nil, err
		}

		ratings := [15]*int{
			&sku.ScoreConsumerTrend, &sku.ScorePointOfDiff, &sku.ScoreChannelSuitability,
			&sku.ScoreStrategicRole, &sku.ScoreMarketingLeverage,
			&sku.ScorePriceLadder, &sku.ScoreUsageOccasion, &sku.ScoreChannelDiff,
			&sku.ScoreStoryCohesion, &sku.ScoreOperationalSynergy,
			&sku.ScoreRegulatoryDelay, &sku.ScoreRetailListing, &sku.ScoreCompetitive,
			&sku.ScoreSupplyChain, &sku.ScorePriceWar,
		}
		for i, col := range ratingColumns {
			if *ratings[i], err = line.intOr(col, rowNum); err != nil {
				return nil, err
			}
		}

		skus = append(skus, sku)
	}

	return skus, nil
}
