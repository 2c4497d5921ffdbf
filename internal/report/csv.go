package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"MarketMath/internal/calculator"
	"MarketMath/internal/model"
)

// WriteCSV writes the full derived table: date, OHLCV, then every derived
// column in pipeline order. Undefined cells are left empty.
func WriteCSV(w io.Writer, ds *model.DerivedSeries) error {
	cw := csv.NewWriter(w)
	cols := ds.Columns()

	header := append([]string{"Date", "Open", "High", "Low", "Close", "Volume"}, cols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(header))
	for i, bar := range ds.Bars {
		record[0] = bar.Time.Format(dateLayout)
		record[1] = formatFloat(bar.Open)
		record[2] = formatFloat(bar.High)
		record[3] = formatFloat(bar.Low)
		record[4] = formatFloat(bar.Close)
		record[5] = formatFloat(bar.Volume)
		for j, c := range cols {
			record[6+j] = formatFloat(ds.At(c, i))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	if !calculator.IsDefined(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
