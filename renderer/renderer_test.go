package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/delfos-invest/delfos"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func testReport(t *testing.T) *delfos.Report {
	t.Helper()
	market := delfos.NewMarket()
	inst := delfos.NewInstrument("PETR4", "Petrobras PN", "Energy", "PN")
	inst.Prices().Append(delfos.MustParse("02-01-2026"), 30)
	inst.Prices().Append(delfos.MustParse("05-01-2026"), 31)
	market.Add(inst)

	session := delfos.NewSessionAt(delfos.MustParse("05-01-2026"), delfos.ClockFunc(time.Now))
	p, err := delfos.NewPortfolio(session, market, delfos.M(1000.0), []delfos.Movement{
		delfos.NewBuy(delfos.MustParse("02-01-2026"), "PETR4", delfos.Q(100), delfos.M(30.0)),
		delfos.NewBuy(delfos.MustParse("02-01-2026"), "GHOST", delfos.Q(1), delfos.M(1.0)),
	})
	if err != nil {
		t.Fatalf("NewPortfolio() unexpected error: %v", err)
	}
	return p.Report()
}

// headings parses a markdown document and returns its heading texts, so tests
// assert on document structure rather than raw bytes.
func headings(t *testing.T, doc string) []string {
	t.Helper()
	source := []byte(doc)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var out []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var sb strings.Builder
			for i := 0; i < h.Lines().Len(); i++ {
				line := h.Lines().At(i)
				sb.Write(line.Value(source))
			}
			out = append(out, sb.String())
		}
		return ast.WalkContinue, nil
	})
	return out
}

func TestSummaryMarkdown(t *testing.T) {
	doc := SummaryMarkdown(testReport(t))

	got := headings(t, doc)
	want := []string{
		"Portfolio Summary on 2026-01-05",
		"Performance",
		"Positions",
		"Unresolved Symbols",
	}
	if len(got) != len(want) {
		t.Fatalf("headings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d = %q, want %q", i, got[i], want[i])
		}
	}

	if !strings.Contains(doc, "PETR4") {
		t.Errorf("summary does not list the position:\n%s", doc)
	}
	if !strings.Contains(doc, "GHOST") {
		t.Errorf("summary does not list the unresolved symbol:\n%s", doc)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	market := delfos.NewMarket()
	inst := delfos.NewInstrument("PETR4", "Petrobras PN", "Energy", "PN")
	inst.Prices().Append(delfos.MustParse("02-01-2026"), 30)
	inst.Prices().Append(delfos.MustParse("05-01-2026"), 31)
	market.Add(inst)
	session := delfos.NewSessionAt(delfos.MustParse("05-01-2026"), delfos.ClockFunc(time.Now))
	p, err := delfos.NewPortfolio(session, market, delfos.M(0.0), []delfos.Movement{
		delfos.NewBuy(delfos.MustParse("02-01-2026"), "PETR4", delfos.Q(100), delfos.M(30.0)),
	})
	if err != nil {
		t.Fatalf("NewPortfolio() unexpected error: %v", err)
	}

	doc := HistoryMarkdown("PETR4", p.History(), 10)
	if !strings.Contains(doc, "History for PETR4") {
		t.Errorf("history title missing:\n%s", doc)
	}
	// Two trading days, two data rows.
	if got := strings.Count(doc, "2026-01-"); got != 2 {
		t.Errorf("history has %d dated rows, want 2:\n%s", got, doc)
	}
	// The first row has no previous day: its daily return is a dash, not NaN.
	if strings.Contains(doc, "NaN") {
		t.Errorf("missing cells leaked as NaN:\n%s", doc)
	}
}

func TestMovementsMarkdown(t *testing.T) {
	doc := MovementsMarkdown([]delfos.Movement{
		delfos.NewBuy(delfos.MustParse("02-01-2026"), "PETR4", delfos.Q(100), delfos.M(30.0)),
		delfos.NewDividend(delfos.MustParse("05-01-2026"), "PETR4", delfos.M(75.0)),
	})
	if !strings.Contains(doc, "Ledger (2 movements)") {
		t.Errorf("ledger title missing:\n%s", doc)
	}
	if !strings.Contains(doc, "02-01-2026") || !strings.Contains(doc, "dividend") {
		t.Errorf("ledger rows missing:\n%s", doc)
	}
}
