package provider

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
)

// DuckDBSource reads bars previously exported as Parquet files in a directory.
type DuckDBSource struct {
	db       *sql.DB
	dataPath string
	sq       squirrel.StatementBuilderType
}

// NewDuckDBSource opens an in-memory DuckDB over the Parquet files in dataPath.
func NewDuckDBSource(dataPath string) (*DuckDBSource, error) {
	if dataPath == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "dataPath is required")
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}

	return &DuckDBSource{
		db:       db,
		dataPath: dataPath,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Fetch implements Provider. The date range is inclusive of startDate and exclusive of endDate.
func (d *DuckDBSource) Fetch(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnFetchProgress) ([]types.MarketData, error) {
	pattern := filepath.Join(d.dataPath, "*.parquet")

	files, err := filepath.Glob(pattern)
	if err != nil || len(files) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataSourceUnavailable, "no parquet files found in %s", d.dataPath)
	}

	pattern = strings.ReplaceAll(pattern, "'", "''")

	// Table functions take no bound parameters, so the view is built with the path inline
	_, err = d.db.ExecContext(ctx, fmt.Sprintf(`CREATE OR REPLACE VIEW market_data AS SELECT * FROM read_parquet('%s');`, pattern))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read parquet files in %s", d.dataPath)
	}

	query, args, err := d.sq.
		Select("id", "time", "symbol", "open", "high", "low", "close", "volume").
		From("market_data").
		Where(squirrel.Eq{"symbol": ticker}).
		Where(squirrel.GtOrEq{"time": startDate}).
		Where(squirrel.Lt{"time": endDate}).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query bars for %s", ticker)
	}
	defer rows.Close()

	var bars []types.MarketData

	for rows.Next() {
		var (
			bar types.MarketData
			id  sql.NullString
		)

		if err := rows.Scan(&id, &bar.Time, &bar.Symbol, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err)
		}

		bar.Id = id.String
		bar.Time = bar.Time.UTC()
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate bars", err)
	}

	reportProgress(onProgress, 1, 1, fmt.Sprintf("Loaded %d bars for %s", len(bars), ticker))

	return bars, nil
}

// Close releases the DuckDB connection.
func (d *DuckDBSource) Close() error {
	return d.db.Close()
}
