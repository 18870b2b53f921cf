package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.Use != "finsheet" {
		t.Errorf("Use = %q, want %q", cmd.Use, "finsheet")
	}

	want := map[string]bool{"process": false, "export": false, "version": false}
	for _, sub := range cmd.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	if !strings.Contains(out.String(), "finsheet version") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestParsePages(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    []int
		wantErr bool
	}{
		{name: "empty selects all", spec: "", want: nil},
		{name: "single page", spec: "40", want: []int{40}},
		{name: "list", spec: "40,42,60", want: []int{40, 42, 60}},
		{name: "range", spec: "40-43", want: []int{40, 41, 42, 43}},
		{name: "mixed", spec: "2,40-41", want: []int{2, 40, 41}},
		{name: "spaces tolerated", spec: " 4 , 6 - 7 ", want: []int{4, 6, 7}},
		{name: "reversed range", spec: "45-40", wantErr: true},
		{name: "not a number", spec: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePages(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePages(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parsePages(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestProcessCmd_HTMLFiling(t *testing.T) {
	dir := t.TempDir()
	filing := filepath.Join(dir, "filing.html")
	html := `<html><body><table>
<tr><td></td><td>2023</td><td>2024</td></tr>
<tr><td>Cash and cash equivalents</td><td>150</td><td>180</td></tr>
<tr><td>Total assets</td><td>1,000</td><td>1,100</td></tr>
<tr><td>Total liabilities</td><td>400</td><td>430</td></tr>
<tr><td>Retained earnings</td><td>250</td><td>290</td></tr>
<tr><td>Total liabilities and stockholders' equity</td><td>1,000</td><td>1,100</td></tr>
</table></body></html>`
	if err := os.WriteFile(filing, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "report.json")

	var stdout bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetArgs([]string{"process", "-o", out, filing})
	if err := root.Execute(); err != nil {
		t.Fatalf("process command failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var payload struct {
		Statements []json.RawMessage `json:"statements"`
		Validation struct {
			Summary struct {
				TotalChecks int `json:"total_checks"`
			} `json:"summary"`
		} `json:"validation"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(payload.Statements) != 1 {
		t.Errorf("report has %d statements, want 1", len(payload.Statements))
	}
	if payload.Validation.Summary.TotalChecks != 33 {
		t.Errorf("total checks = %d, want 33", payload.Validation.Summary.TotalChecks)
	}
	if !strings.Contains(stdout.String(), "checks passed") {
		t.Errorf("summary not printed, got %q", stdout.String())
	}
}

func TestProcessCmd_MissingConfig(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"process", "-c", "/nonexistent/finsheet.yaml", "whatever.pdf"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
