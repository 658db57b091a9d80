package renderer

import (
	"bytes"
	"fmt"

	"github.com/delfos-invest/delfos"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the last n rows of a valuation series. A title of
// "" stands for the whole book.
func HistoryMarkdown(title string, v *delfos.Valuation, n int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if title == "" {
		doc.H1("Portfolio History")
	} else {
		doc.H1(fmt.Sprintf("History for %s", title))
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Mark Value", "Cost", "Cash Flow", "Daily Change", "Daily Return", "Total Return"},
		Rows:   [][]string{},
	}
	for _, row := range v.Tail(n) {
		table.Rows = append(table.Rows, []string{
			row.On.String(),
			cell(row.MarkValue),
			cell(row.Cost),
			cell(row.CashFlow),
			cell(row.DailyChange),
			percentCell(row.DailyReturn),
			percentCell(row.TotalReturn),
		})
	}
	doc.Table(table)

	return doc.String()
}
