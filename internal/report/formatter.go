package report

import (
	"fmt"
	"strings"
	"time"

	"MarketMath/internal/calculator"
	"MarketMath/internal/model"
)

const dateLayout = "2006-01-02"

// FormatAnalysis renders the summary cards, column statistics and the last
// tailRows rows of the derived table.
func FormatAnalysis(a *model.Analysis, tailRows int) string {
	var b strings.Builder
	writeAnalysis(&b, a, tailRows)
	return b.String()
}

// FormatComparison renders both analyses followed by a side-by-side summary
// and the rebased price tail.
func FormatComparison(c *model.Comparison, tailRows int) string {
	var b strings.Builder
	writeAnalysis(&b, c.Left, tailRows)
	b.WriteString("\n")
	writeAnalysis(&b, c.Right, tailRows)

	b.WriteString(fmt.Sprintf("\n== %s vs %s ==\n", c.Left.Symbol, c.Right.Symbol))
	b.WriteString(fmt.Sprintf("%-16s %14s %14s\n", "", c.Left.Symbol, c.Right.Symbol))
	row := func(label string, l, r float64, format string) {
		b.WriteString(fmt.Sprintf("%-16s %14s %14s\n", label, num(l, format), num(r, format)))
	}
	ls, rs := c.Left.Summary, c.Right.Summary
	row("Last close", ls.LastClose, rs.LastClose, "%.2f")
	row("Change %", ls.ChangePct, rs.ChangePct, "%+.2f")
	row("Log return", ls.TotalLogReturn, rs.TotalLogReturn, "%+.4f")
	row("Volatility", ls.Volatility, rs.Volatility, "%.4f")
	row("Velocity", ls.Velocity, rs.Velocity, "%+.4f")
	row("Acceleration", ls.Acceleration, rs.Acceleration, "%+.4f")
	b.WriteString(fmt.Sprintf("%-16s %14s %14s\n", "Trend", ls.Trend, rs.Trend))

	if c.LeftRebased.Empty() || c.RightRebased.Empty() {
		return b.String()
	}
	b.WriteString(fmt.Sprintf("\nRebased to %.0f (last %d rows)\n", calculator.RebaseBase, tailRows))
	b.WriteString(fmt.Sprintf("%-10s %14s %14s\n", "Date", c.Left.Symbol, c.Right.Symbol))
	right := rebasedByDate(c.RightRebased)
	for _, i := range tail(c.LeftRebased.Len(), tailRows) {
		day := c.LeftRebased.Bars[i].Time.Format(dateLayout)
		rv := "n/a"
		if v, ok := right[day]; ok {
			rv = num(v, "%.2f")
		}
		b.WriteString(fmt.Sprintf("%-10s %14s %14s\n", day,
			num(c.LeftRebased.At(model.ColRebased, i), "%.2f"), rv))
	}
	return b.String()
}

func writeAnalysis(b *strings.Builder, a *model.Analysis, tailRows int) {
	b.WriteString(fmt.Sprintf("== %s | %s ==\n", a.Symbol, a.Period))
	if a.Empty() {
		b.WriteString(fmt.Sprintf("No data: %d bars received, not enough history for every indicator.\n", a.InputRows))
		return
	}

	s := a.Summary
	b.WriteString(fmt.Sprintf("Rows: %d of %d (%s to %s)\n", s.Rows, a.InputRows,
		s.From.Format(dateLayout), s.To.Format(dateLayout)))
	b.WriteString(fmt.Sprintf("Close: %.2f -> %.2f (%s%%, log %s)\n",
		s.FirstClose, s.LastClose, num(s.ChangePct, "%+.2f"), num(s.TotalLogReturn, "%+.4f")))
	b.WriteString(fmt.Sprintf("Range: %.2f - %.2f (position %s)\n", s.Low, s.High, num(s.RangePosition, "%.2f")))
	b.WriteString(fmt.Sprintf("Velocity: %s | Acceleration: %s\n", num(s.Velocity, "%+.4f"), num(s.Acceleration, "%+.4f")))
	b.WriteString(fmt.Sprintf("Volatility (ann.): %s | %s: %s (%s)\n",
		num(s.Volatility, "%.4f"), s.SMAColumn, num(s.SMA, "%.2f"), s.Trend))

	b.WriteString(fmt.Sprintf("\n%-14s %6s %12s %12s %12s %12s\n", "Column", "N", "Mean", "Std", "Min", "Max"))
	for _, st := range a.Stats {
		b.WriteString(fmt.Sprintf("%-14s %6d %12s %12s %12s %12s\n", st.Name, st.Count,
			num(st.Mean, "%.4f"), num(st.Std, "%.4f"), num(st.Min, "%.4f"), num(st.Max, "%.4f")))
	}

	if tailRows <= 0 {
		return
	}
	cols := a.Series.Columns()
	b.WriteString(fmt.Sprintf("\n%-10s %10s", "Date", "Close"))
	for _, c := range cols {
		b.WriteString(fmt.Sprintf(" %12s", c))
	}
	b.WriteString("\n")
	for _, i := range tail(a.Series.Len(), tailRows) {
		bar := a.Series.Bars[i]
		b.WriteString(fmt.Sprintf("%-10s %10.2f", bar.Time.Format(dateLayout), bar.Close))
		for _, c := range cols {
			b.WriteString(fmt.Sprintf(" %12s", num(a.Series.At(c, i), "%.4f")))
		}
		b.WriteString("\n")
	}
}

// num formats v, rendering undefined values as "n/a".
func num(v float64, format string) string {
	if !calculator.IsDefined(v) {
		return "n/a"
	}
	return fmt.Sprintf(format, v)
}

func tail(n, k int) []int {
	start := max(0, n-k)
	idx := make([]int, 0, n-start)
	for i := start; i < n; i++ {
		idx = append(idx, i)
	}
	return idx
}

func rebasedByDate(ds *model.DerivedSeries) map[string]float64 {
	out := make(map[string]float64, ds.Len())
	for i, bar := range ds.Bars {
		out[bar.Time.Format(dateLayout)] = ds.At(model.ColRebased, i)
	}
	return out
}

// Header is a one-line banner for scheduled runs.
func Header(now time.Time, symbols []string) string {
	return fmt.Sprintf("MarketMath report | %s | %s\n\n", now.Format("2006-01-02 15:04"), strings.Join(symbols, ", "))
}
