package finsheet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/finsheet/finsheet/config"
	"github.com/finsheet/finsheet/model"
)

const balanceSheetHTML = `<!DOCTYPE html>
<html>
<head><title>Annual Report</title></head>
<body>
<p>Consolidated financial data follows.</p>
<table>
  <tr><td></td><td>2023</td><td>2024</td></tr>
  <tr><td>Cash and cash equivalents</td><td>150</td><td>180</td></tr>
  <tr><td>Accounts receivable</td><td>90</td><td>95</td></tr>
  <tr><td>Total assets</td><td>1,000</td><td>1,100</td></tr>
  <tr><td>Total liabilities</td><td>400</td><td>430</td></tr>
  <tr><td>Retained earnings</td><td>250</td><td>290</td></tr>
  <tr><td>Total liabilities and stockholders' equity</td><td>1,000</td><td>1,100</td></tr>
</table>
<table>
  <tr><td>Navigation</td></tr>
</table>
</body>
</html>`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestProcess_HTMLFiling(t *testing.T) {
	path := writeFixture(t, "filing.html", balanceSheetHTML)

	bundle, err := Open(path).Process(context.Background())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(bundle.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(bundle.Statements))
	}
	stmt := bundle.Statements[0]
	if stmt.Type != model.BalanceSheet {
		t.Errorf("statement type = %v, want BalanceSheet", stmt.Type)
	}
	if stmt.Name != "BalanceSheet" {
		t.Errorf("statement name = %q, want %q", stmt.Name, "BalanceSheet")
	}
	if got := bundle.Validation.Summary.TotalChecks; got != 33 {
		t.Errorf("total checks = %d, want 33", got)
	}
	if bundle.Validation.BalanceSheetTotals == nil {
		t.Error("expected balance sheet totals for a classified balance sheet")
	}
}

func TestProcess_HTMLRetainsUnclassifiedTables(t *testing.T) {
	html := `<html><body>
<table>
  <tr><td></td><td>2023</td><td>2024</td></tr>
  <tr><td>Cash and cash equivalents</td><td>150</td><td>180</td></tr>
  <tr><td>Total assets</td><td>1,000</td><td>1,100</td></tr>
  <tr><td>Total liabilities and stockholders' equity</td><td>1,000</td><td>1,100</td></tr>
</table>
<table>
  <tr><td>Region</td><td>2023</td><td>2024</td></tr>
  <tr><td>Americas</td><td>500</td><td>560</td></tr>
  <tr><td>EMEA</td><td>300</td><td>310</td></tr>
</table>
</body></html>`
	path := writeFixture(t, "filing.html", html)

	bundle, err := Open(path).Process(context.Background())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(bundle.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(bundle.Statements))
	}

	var unclassified *model.Statement
	for _, stmt := range bundle.Statements {
		if stmt.Type == model.Unclassified {
			unclassified = stmt
		}
	}
	if unclassified == nil {
		t.Fatal("unclassified table was dropped from the output")
	}
	if unclassified.Name != "Table 2" {
		t.Errorf("unclassified table name = %q, want %q", unclassified.Name, "Table 2")
	}
	if len(unclassified.Rows) != 2 {
		t.Errorf("unclassified table has %d rows, want 2", len(unclassified.Rows))
	}
}

func TestProcess_HTMLWithoutStatements(t *testing.T) {
	path := writeFixture(t, "index.html",
		`<html><body><table><tr><td>Home</td><td>About</td></tr></table></body></html>`)

	bundle, err := Open(path).Process(context.Background())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(bundle.Statements) != 0 {
		t.Fatalf("got %d statements, want 0", len(bundle.Statements))
	}
	if got := bundle.Validation.Summary.FailedChecks; got != 33 {
		t.Errorf("failed checks = %d, want 33 when nothing was extracted", got)
	}
}

func TestProcess_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.pdf")).Process(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	path := writeFixture(t, "filing.html", balanceSheetHTML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(path).Process(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Process() error = %v, want context.Canceled", err)
	}
}

func TestOptions_Chaining(t *testing.T) {
	p := Open("filing.pdf").
		MinPage(40).
		SearchText("CONSOLIDATED BALANCE SHEETS").
		Tolerance(0.02)

	if p.cfg.Search.MinPage != 40 {
		t.Errorf("MinPage = %d, want 40", p.cfg.Search.MinPage)
	}
	if len(p.cfg.Search.Statements) != 1 {
		t.Fatalf("got %d queries, want 1", len(p.cfg.Search.Statements))
	}
	if p.cfg.Search.Statements[0].Phrase != "CONSOLIDATED BALANCE SHEETS" {
		t.Errorf("query phrase = %q", p.cfg.Search.Statements[0].Phrase)
	}
	if p.cfg.Validation.Tolerance != 0.02 {
		t.Errorf("tolerance = %v, want 0.02", p.cfg.Validation.Tolerance)
	}
}

func TestWithConfig_Copies(t *testing.T) {
	cfg := config.Default()
	p := Open("filing.pdf").WithConfig(cfg).MinPage(99)

	if cfg.Search.MinPage == 99 {
		t.Error("MinPage leaked into the caller's config")
	}
	if p.cfg.Search.MinPage != 99 {
		t.Errorf("processor MinPage = %d, want 99", p.cfg.Search.MinPage)
	}
}

func TestMust(t *testing.T) {
	if got := Must("ok", nil); got != "ok" {
		t.Errorf("Must returned %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}
