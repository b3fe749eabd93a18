package ingest

import (
	"strconv"
	"strings"

	"github.com/anvaya/replen/internal/domain"
)

// Named input sources. Errors always identify the source they came from.
const (
	SourceSales        = "sales30d"
	SourceFCStock      = "fc_stock"
	SourceCentralStock = "central_stock"
	SourceRemarks      = "remarks"
)

// field is one logical column with its acceptable header synonyms. Headers
// match case- and punctuation-insensitively, so a synonym list stays short.
type field struct {
	name     string
	required bool
	synonyms []string
}

var salesFields = []field{
	{name: "channel", required: true, synonyms: []string{"mp", "marketplace", "channel"}},
	{name: "date", synonyms: []string{"date", "order date", "sale date"}},
	{name: "sku", required: true, synonyms: []string{"sku", "seller sku"}},
	{name: "channel_id", synonyms: []string{"channel id", "listing id"}},
	{name: "quantity", required: true, synonyms: []string{"quantity", "qty", "units"}},
	{name: "warehouse_id", required: true, synonyms: []string{"warehouse id", "warehouse", "fc", "fulfillment center"}},
	{name: "fulfillment_type", synonyms: []string{"fulfillment type", "fulfilment type", "ship type"}},
	{name: "central_sku", synonyms: []string{"uniware sku", "central sku", "master sku"}},
	{name: "style_id", synonyms: []string{"style id", "style"}},
	{name: "size", synonyms: []string{"size"}},
}

var fcStockFields = []field{
	{name: "channel", required: true, synonyms: []string{"mp", "marketplace", "channel"}},
	{name: "warehouse_id", required: true, synonyms: []string{"warehouse id", "warehouse", "fc", "fulfillment center"}},
	{name: "sku", required: true, synonyms: []string{"sku", "seller sku"}},
	{name: "channel_id", synonyms: []string{"channel id", "listing id"}},
	{name: "quantity", required: true, synonyms: []string{"quantity", "qty", "stock", "available"}},
}

var centralStockFields = []field{
	{name: "central_sku", required: true, synonyms: []string{"uniware sku", "central sku", "master sku", "sku"}},
	{name: "quantity", required: true, synonyms: []string{"quantity", "qty", "stock", "available"}},
}

var remarkFields = []field{
	{name: "style_id", required: true, synonyms: []string{"style id", "style"}},
	{name: "category", synonyms: []string{"category", "cat"}},
	{name: "status", required: true, synonyms: []string{"company remark", "remark", "status", "lifecycle"}},
}

// normalizeHeader lowercases and strips everything non-alphanumeric, so
// "Warehouse-ID", "warehouse_id" and "Warehouse Id" all collapse to the
// same token.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveColumns maps logical field names to column indexes for the given
// header row. A required field with no matching header is a fatal schema
// violation for the named source.
func resolveColumns(source string, header []string, fields []field) (map[string]int, error) {
	normalized := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := normalized[key]; !seen {
			normalized[key] = i
		}
	}

	cols := make(map[string]int, len(fields))
	for _, f := range fields {
		found := false
		for _, syn := range f.synonyms {
			if idx, ok := normalized[normalizeHeader(syn)]; ok {
				cols[f.name] = idx
				found = true
				break
			}
		}
		if !found && f.required {
			return nil, &SchemaError{Source: source, Field: f.name, Header: header}
		}
	}
	return cols, nil
}

// cell returns the trimmed value at the logical column, or "" when the
// column is absent or the record is short.
func cell(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseQty cleans and parses an integer quantity. Thousands separators are
// stripped; anything unparseable defaults to 0 rather than failing the row.
func parseQty(raw string) int {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// DecodeSales turns raw tabular records (header row first) into sale
// records. Rows missing any required key field are dropped.
func DecodeSales(records [][]string) ([]domain.SaleRecord, error) {
	if len(records) == 0 {
		return nil, &TransportError{Source: SourceSales, Reason: "empty response, no header row"}
	}
	cols, err := resolveColumns(SourceSales, records[0], salesFields)
	if err != nil {
		return nil, err
	}

	var out []domain.SaleRecord
	for _, rec := range records[1:] {
		sku := cell(rec, cols, "sku")
		fc := cell(rec, cols, "warehouse_id")
		ch := cell(rec, cols, "channel")
		if sku == "" || fc == "" || ch == "" {
			continue
		}
		out = append(out, domain.SaleRecord{
			Channel:         ch,
			Date:            cell(rec, cols, "date"),
			SKU:             sku,
			ChannelID:       cell(rec, cols, "channel_id"),
			Quantity:        parseQty(cell(rec, cols, "quantity")),
			WarehouseID:     fc,
			FulfillmentType: cell(rec, cols, "fulfillment_type"),
			CentralSKU:      cell(rec, cols, "central_sku"),
			StyleID:         cell(rec, cols, "style_id"),
			Size:            cell(rec, cols, "size"),
		})
	}
	return out, nil
}

// DecodeFCStock turns raw tabular records into warehouse stock records.
func DecodeFCStock(records [][]string) ([]domain.WarehouseStockRecord, error) {
	if len(records) == 0 {
		return nil, &TransportError{Source: SourceFCStock, Reason: "empty response, no header row"}
	}
	cols, err := resolveColumns(SourceFCStock, records[0], fcStockFields)
	if err != nil {
		return nil, err
	}

	var out []domain.WarehouseStockRecord
	for _, rec := range records[1:] {
		sku := cell(rec, cols, "sku")
		fc := cell(rec, cols, "warehouse_id")
		ch := cell(rec, cols, "channel")
		if sku == "" || fc == "" || ch == "" {
			continue
		}
		out = append(out, domain.WarehouseStockRecord{
			Channel:     ch,
			WarehouseID: fc,
			SKU:         sku,
			ChannelID:   cell(rec, cols, "channel_id"),
			Quantity:    parseQty(cell(rec, cols, "quantity")),
		})
	}
	return out, nil
}

// DecodeCentralStock turns raw tabular records into central stock records.
func DecodeCentralStock(records [][]string) ([]domain.CentralStockRecord, error) {
	if len(records) == 0 {
		return nil, &TransportError{Source: SourceCentralStock, Reason: "empty response, no header row"}
	}
	cols, err := resolveColumns(SourceCentralStock, records[0], centralStockFields)
	if err != nil {
		return nil, err
	}

	var out []domain.CentralStockRecord
	for _, rec := range records[1:] {
		sku := cell(rec, cols, "central_sku")
		if sku == "" {
			continue
		}
		out = append(out, domain.CentralStockRecord{
			CentralSKU: sku,
			Quantity:   parseQty(cell(rec, cols, "quantity")),
		})
	}
	return out, nil
}

// DecodeRemarks turns raw tabular records into catalog remarks.
func DecodeRemarks(records [][]string) ([]domain.CatalogRemark, error) {
	if len(records) == 0 {
		return nil, &TransportError{Source: SourceRemarks, Reason: "empty response, no header row"}
	}
	cols, err := resolveColumns(SourceRemarks, records[0], remarkFields)
	if err != nil {
		return nil, err
	}

	var out []domain.CatalogRemark
	for _, rec := range records[1:] {
		style := cell(rec, cols, "style_id")
		if style == "" {
			continue
		}
		out = append(out, domain.CatalogRemark{
			StyleID:  style,
			Category: cell(rec, cols, "category"),
			Status:   cell(rec, cols, "status"),
		})
	}
	return out, nil
}
