package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/anvaya/replen/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Loader produces one complete input snapshot. Implementations must be
// all-or-nothing: a failure on any of the four sources fails the load.
type Loader interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// SheetLoader loads the four sources from published spreadsheet CSV URLs.
// The fetches are independent and read-only, so they run concurrently; the
// planning core only ever sees a fully assembled snapshot.
type SheetLoader struct {
	client *SheetClient
	urls   SourceURLs
}

// NewSheetLoader creates a loader over the given source URLs.
func NewSheetLoader(client *SheetClient, urls SourceURLs) *SheetLoader {
	return &SheetLoader{client: client, urls: urls}
}

// Load fetches and decodes all four sources, failing on the first error.
func (l *SheetLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	var (
		sales        []domain.SaleRecord
		fcStock      []domain.WarehouseStockRecord
		centralStock []domain.CentralStockRecord
		remarks      []domain.CatalogRemark
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := l.client.FetchCSV(gctx, SourceSales, l.urls.Sales)
		if err != nil {
			return err
		}
		sales, err = DecodeSales(records)
		return err
	})
	g.Go(func() error {
		records, err := l.client.FetchCSV(gctx, SourceFCStock, l.urls.FCStock)
		if err != nil {
			return err
		}
		fcStock, err = DecodeFCStock(records)
		return err
	})
	g.Go(func() error {
		records, err := l.client.FetchCSV(gctx, SourceCentralStock, l.urls.CentralStock)
		if err != nil {
			return err
		}
		centralStock, err = DecodeCentralStock(records)
		return err
	})
	g.Go(func() error {
		records, err := l.client.FetchCSV(gctx, SourceRemarks, l.urls.Remarks)
		if err != nil {
			return err
		}
		remarks, err = DecodeRemarks(records)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(sales) == 0 {
		return nil, fmt.Errorf("source %s: %w", SourceSales, ErrNoData)
	}

	log.Info().
		Int("sales", len(sales)).
		Int("fc_stock", len(fcStock)).
		Int("central_stock", len(centralStock)).
		Int("remarks", len(remarks)).
		Msg("input snapshot loaded")

	return &domain.Dataset{
		Sales:        sales,
		FCStock:      fcStock,
		CentralStock: centralStock,
		Remarks:      remarks,
		LoadedAt:     time.Now(),
	}, nil
}
