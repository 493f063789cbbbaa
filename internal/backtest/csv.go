package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"date",
		"price",
		"harvest_tons",
		"action",
		"reason",
		"requested_tons",
		"sold_tons",
		"gross_proceeds",
		"transaction_cost",
		"storage_cost",
		"net_proceeds",
		"inventory_start",
		"inventory_end",
		"cum_net",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.Date),
			fmtFloat(r.Price),
			fmtFloat(r.HarvestTons),
			string(r.Action),
			r.Reason,
			fmtFloat(r.RequestedTons),
			fmtFloat(r.SoldTons),
			fmtFloat(r.GrossProceeds),
			fmtFloat(r.TransactionCost),
			fmtFloat(r.StorageCost),
			fmtFloat(r.NetProceeds),
			fmtFloat(r.InventoryStart),
			fmtFloat(r.InventoryEnd),
			fmtFloat(r.CumNet),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
