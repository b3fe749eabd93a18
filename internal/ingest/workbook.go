package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/anvaya/replen/internal/domain"
	"github.com/xuri/excelize/v2"
)

// WorkbookLoader loads the four sources from tabs of a single local XLSX
// workbook, for offline runs against an ops export instead of the live
// sheet URLs. Tab names match source names case/punctuation-insensitively.
type WorkbookLoader struct {
	Path string
}

// NewWorkbookLoader creates a loader over the given workbook path.
func NewWorkbookLoader(path string) *WorkbookLoader {
	return &WorkbookLoader{Path: path}
}

// Load reads and decodes all four tabs. Same all-or-nothing contract as the
// sheet loader.
func (l *WorkbookLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", l.Path, err)
	}
	defer f.Close()

	salesRecords, err := l.sheetRows(f, SourceSales)
	if err != nil {
		return nil, err
	}
	fcStockRecords, err := l.sheetRows(f, SourceFCStock)
	if err != nil {
		return nil, err
	}
	centralRecords, err := l.sheetRows(f, SourceCentralStock)
	if err != nil {
		return nil, err
	}
	remarkRecords, err := l.sheetRows(f, SourceRemarks)
	if err != nil {
		return nil, err
	}

	sales, err := DecodeSales(salesRecords)
	if err != nil {
		return nil, err
	}
	fcStock, err := DecodeFCStock(fcStockRecords)
	if err != nil {
		return nil, err
	}
	centralStock, err := DecodeCentralStock(centralRecords)
	if err != nil {
		return nil, err
	}
	remarks, err := DecodeRemarks(remarkRecords)
	if err != nil {
		return nil, err
	}

	if len(sales) == 0 {
		return nil, fmt.Errorf("source %s: %w", SourceSales, ErrNoData)
	}

	return &domain.Dataset{
		Sales:        sales,
		FCStock:      fcStock,
		CentralStock: centralStock,
		Remarks:      remarks,
		LoadedAt:     time.Now(),
	}, nil
}

func (l *WorkbookLoader) sheetRows(f *excelize.File, source string) ([][]string, error) {
	want := normalizeHeader(source)
	for _, name := range f.GetSheetList() {
		if normalizeHeader(name) != want {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("source %s: read sheet %q: %w", source, name, err)
		}
		return rows, nil
	}
	return nil, &TransportError{Source: source, Reason: fmt.Sprintf("no matching sheet in workbook %s", l.Path)}
}
