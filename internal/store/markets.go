package store

import (
	"context"
	"database/sql"
	"fmt"

	"sku_scorecard/internal/engine"
)

type MarketStore struct {
	db *sql.DB
}

func NewMarketStore(db *sql.DB) *MarketStore {
	return &MarketStore{db: db}
}

const marketColumns = `market_name, currency, import_freight_pct, duties_taxes_pct,
	price_multiplier, doc_distributor, doc_retail`

func scanMarket(row interface{ Scan(...any) error }) (engine.MarketConfig, error) {
	var m engine.MarketConfig
	err := row.Scan(&m.MarketName, &m.Currency, &m.ImportFreightPct, &m.DutiesTaxesPct,
		&m.PriceMultiplier, &m.DocDistributor, &m.DocRetail)
	return m, err
}

// List returns every configured market.
func (s *MarketStore) List(ctx context.Context) ([]engine.MarketConfig, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+marketColumns+` FROM market_config ORDER BY market_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}
	defer rows.Close()

	var markets []engine.MarketConfig
	for rows.Next() {
		m, err := scanMarket(rows)
		if err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

// Get returns one market, or (nil, nil) when it does not exist.
func (s *MarketStore) Get(ctx context.Context, name string) (*engine.MarketConfig, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+marketColumns+` FROM market_config WHERE market_name = $1`, name)
	m, err := scanMarket(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get market %s: %w", name, err)
	}
	return &m, nil
}

// Create inserts a new market row. Fails on duplicates.
func (s *MarketStore) Create(ctx context.Context, m engine.MarketConfig) error {
	query := `
		INSERT INTO market_config (` + marketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query, m.MarketName, m.Currency, m.ImportFreightPct,
		m.DutiesTaxesPct, m.PriceMultiplier, m.DocDistributor, m.DocRetail)
	if err != nil {
		return fmt.Errorf("failed to create market %s: %w", m.MarketName, err)
	}
	return nil
}

// CreateIfAbsent seeds a market without touching an existing one.
func (s *MarketStore) CreateIfAbsent(ctx context.Context, m engine.MarketConfig) error {
	query := `
		INSERT INTO market_config (` + marketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (market_name) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, m.MarketName, m.Currency, m.ImportFreightPct,
		m.DutiesTaxesPct, m.PriceMultiplier, m.DocDistributor, m.DocRetail)
	if err != nil {
		return fmt.Errorf("failed to seed market %s: %w", m.MarketName, err)
	}
	return nil
}

// Update replaces every attribute of an existing market.
func (s *MarketStore) Update(ctx context.Context, m engine.MarketConfig) error {
	query := `
		UPDATE market_config
		SET currency = $2, import_freight_pct = $3, duties_taxes_pct = $4,
		    price_multiplier = $5, doc_distributor = $6, doc_retail = $7
		WHERE market_name = $1
	`
	result, err := s.db.ExecContext(ctx, query, m.MarketName, m.Currency, m.ImportFreightPct,
		m.DutiesTaxesPct, m.PriceMultiplier, m.DocDistributor, m.DocRetail)
	if err != nil {
		return fmt.Errorf("failed to update market %s: %w", m.MarketName, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("market not found: %s", m.MarketName)
	}
	return nil
}

// Delete removes a market; channel and category rows cascade in the schema.
func (s *MarketStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM market_config WHERE market_name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete market %s: %w", name, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("market not found: %s", name)
	}
	return nil
}

// Map loads all markets keyed by name for an engine snapshot.
func (s *MarketStore) Map(ctx context.Context) (map[string]engine.MarketConfig, error) {
	markets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]engine.MarketConfig, len(markets))
	for _, m := range markets {
		byName[m.MarketName] = m
	}
	return byName, nil
}
