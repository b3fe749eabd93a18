package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/anvaya/replen/internal/config"
	"github.com/anvaya/replen/internal/domain"
	"github.com/anvaya/replen/internal/ingest"
	"github.com/anvaya/replen/internal/service"
	"github.com/anvaya/replen/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("could not load .env file")
	}

	app := &cli.App{
		Name:  "replen-plan",
		Usage: "Run one replenishment planning cycle and print or export the allocated plan",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Ingest the four input sources, compute the allocated plan",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "workbook",
						Usage:   "Local XLSX workbook with the four input tabs (overrides sheet URLs)",
						EnvVars: []string{"REPLEN_WORKBOOK"},
					},
					&cli.StringFlag{
						Name:  "channel",
						Usage: "Only show rows for this channel (e.g. \"Amazon IN\", \"SELLER\")",
					},
					&cli.BoolFlag{
						Name:  "seller",
						Usage: "Only show direct-fulfillment rows",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Write the plan rows to this CSV file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "summary",
						Usage: "Print per-warehouse totals instead of individual rows",
					},
				},
				Action: runPlan,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("planning run failed")
	}
}

func runPlan(c *cli.Context) error {
	var loader ingest.Loader
	if workbook := c.String("workbook"); workbook != "" {
		loader = ingest.NewWorkbookLoader(workbook)
	} else {
		cfg := config.Load()
		client := ingest.NewSheetClient(time.Duration(cfg.Sources.FetchTimeoutSecs) * time.Second)
		loader = ingest.NewSheetLoader(client, ingest.SourceURLs{
			Sales:        cfg.Sources.SalesURL,
			FCStock:      cfg.Sources.FCStockURL,
			CentralStock: cfg.Sources.CentralStockURL,
			Remarks:      cfg.Sources.RemarksURL,
		})
	}

	planService := service.NewPlanService(loader, nil)
	snap, err := planService.Refresh(c.Context)
	if err != nil {
		return err
	}

	filter := domain.PlanFilter{
		Channel:    c.String("channel"),
		SellerOnly: c.Bool("seller"),
	}

	if c.Bool("summary") {
		summary, err := planService.WarehouseSummary(c.Context, filter)
		if err != nil {
			return err
		}
		printSummary(summary)
		return nil
	}

	rows, err := planService.Rows(c.Context, filter)
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		if err := writePlanCSV(out, rows); err != nil {
			return err
		}
		fmt.Printf("run %s: wrote %d rows to %s\n", snap.RunID, len(rows), out)
		return nil
	}

	printRows(rows)
	return nil
}

func printRows(rows []domain.PlanRow) {
	fmt.Printf("%-12s %-14s %-18s %-12s %8s %8s %8s %8s %8s %8s  %s\n",
		"CHANNEL", "FC", "SKU", "STYLE", "SALES30", "DRR", "STOCK", "NEED", "ALLOC", "RECALL", "ACTION")
	for _, r := range rows {
		fmt.Printf("%-12s %-14s %-18s %-12s %8d %8.2f %8d %8d %8d %8d  %s\n",
			r.Channel, r.WarehouseID, r.SKU, r.StyleID,
			r.Sales30d, r.RunRate, r.WarehouseStock,
			r.ShipmentQty, r.AllocatedQty, r.RecallQty, r.Action)
	}
	fmt.Printf("%d rows\n", len(rows))
}

func printSummary(summary []domain.WarehouseSummary) {
	fmt.Printf("%-16s %10s %10s %10s %10s %10s %10s\n",
		"FC", "STOCK", "SALES30", "DRR", "NEED", "ALLOC", "RECALL")
	for _, s := range summary {
		fmt.Printf("%-16s %10d %10d %10s %10d %10d %10d\n",
			s.WarehouseID, s.TotalStock, s.TotalSales,
			strconv.FormatFloat(s.RunRate, 'f', 2, 64),
			s.ShipmentQty, s.AllocatedQty, s.RecallQty)
	}
}
