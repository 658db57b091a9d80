package renderer

import (
	"bytes"
	"fmt"

	"github.com/delfos-invest/delfos"
	md "github.com/nao1215/markdown"
)

// MovementsMarkdown renders the raw ledger, one row per movement, in list
// order.
func MovementsMarkdown(movements []delfos.Movement) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Ledger (%d movements)", len(movements)))
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Kind", "Ticker", "Quantity", "Price", "Amount"},
		Rows:   [][]string{},
	}
	for _, m := range movements {
		table.Rows = append(table.Rows, []string{
			m.Date.Ledger(),
			string(m.Kind),
			m.Security,
			m.Quantity.String(),
			m.Price.String(),
			m.Amount.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
