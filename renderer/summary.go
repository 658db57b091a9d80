package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/delfos-invest/delfos"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the whole-book report: cash, totals, one row per
// position, and the symbols that failed to resolve.
func SummaryMarkdown(r *delfos.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", r.On))
	doc.PlainText(fmt.Sprintf("Cash: %s", r.Cash))
	doc.PlainText(fmt.Sprintf("Held Shares Value: %s", r.HeldSharesValue))

	doc.H2("Performance")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Cost", r.TotalCost.String()},
			{"Total Income", r.TotalIncome.String()},
			{"Dividends", r.TotalDividends.String()},
			{"Held Shares Change", r.HeldSharesChange.SignedString()},
			{"Held Shares Return", r.HeldSharesReturn.String()},
			{"Total Change", r.TotalChange.SignedString()},
			{"Total Return", r.TotalReturn.String()},
		},
	})

	if len(r.Positions) > 0 {
		doc.H2("Positions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Ticker", "Quantity", "Avg Cost", "Price", "Value", "Return"},
			Rows:   [][]string{},
		}
		for _, pos := range r.Positions {
			table.Rows = append(table.Rows, []string{
				pos.Ticker,
				pos.Quantity.String(),
				pos.AverageCost.String(),
				pos.CurrentPrice.String(),
				pos.HeldSharesValue.String(),
				pos.TotalReturn.String(),
			})
		}
		doc.Table(table)
	}

	if len(r.FailedSymbols) > 0 {
		doc.H2("Unresolved Symbols")
		doc.PlainText(strings.Join(r.FailedSymbols, ", "))
	}

	return doc.String()
}
