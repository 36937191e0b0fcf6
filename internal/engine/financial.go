package engine

// financials holds the per-unit money math feeding both the scorecard and
// the demand rollups.
type financials struct {
	AdjListPrice    float64
	ImportedCost    float64
	CTSPct          float64
	GMDollarPerUnit float64
	GMPct           float64
}

// computeFinancials derives adjusted price, imported cost, cost-to-serve
// load and gross margin for one SKU. Either config pointer may be nil: an
// unconfigured market passes price and cost through unchanged, an
// unconfigured channel contributes zero cost-to-serve.
func computeFinancials(sku SkuRecord, market *MarketConfig, channel *MarketChannelConfig) financials {
	f := financials{
		AdjListPrice: sku.LocalListPrice,
		ImportedCost: sku.LandedCost,
	}

	if market != nil {
		f.AdjListPrice = sku.LocalListPrice * market.PriceMultiplier
		f.ImportedCost = sku.LandedCost * (1.0 + market.ImportFreightPct) * (1.0 + market.DutiesTaxesPct)
	}

	if channel != nil {
		f.CTSPct = channel.CTSTotal()
	}

	f.GMDollarPerUnit = f.AdjListPrice - (f.ImportedCost + f.CTSPct*f.AdjListPrice)

	// Zero, not a division error, when the adjusted price is degenerate.
	if f.AdjListPrice > 0 {
		f.GMPct = f.GMDollarPerUnit / f.AdjListPrice
	}

	return f
}
