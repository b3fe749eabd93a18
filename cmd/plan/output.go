package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/anvaya/replen/internal/domain"
)

// writePlanCSV exports allocated plan rows to a CSV file for downstream
// ops tooling.
func writePlanCSV(path string, rows []domain.PlanRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"id", "channel", "style_id", "sku", "central_sku", "warehouse_id",
		"sales_30d", "run_rate", "warehouse_stock", "stock_cover",
		"shipment_qty", "allocated_qty", "recall_qty", "action", "remarks",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.ID,
			string(r.Channel),
			r.StyleID,
			r.SKU,
			r.CentralSKU,
			r.WarehouseID,
			strconv.Itoa(r.Sales30d),
			strconv.FormatFloat(r.RunRate, 'f', 2, 64),
			strconv.Itoa(r.WarehouseStock),
			strconv.FormatFloat(r.StockCover, 'f', 1, 64),
			strconv.Itoa(r.ShipmentQty),
			strconv.Itoa(r.AllocatedQty),
			strconv.Itoa(r.RecallQty),
			string(r.Action),
			r.Remarks,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
