package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"yamdb/internal/importer"
)

func sampleReport() *importer.Report {
	return &importer.Report{
		Dir: "static/data",
		Tags: []importer.TagReport{
			{Tag: importer.TagUsers, Parsed: 3, Inserted: 3},
			{Tag: importer.TagGenreTitle, Parsed: 4, Inserted: 3, Failed: 1},
		},
		Skipped: []string{"notes.txt"},
	}
}

func TestPrintReport_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), false); err != nil {
		t.Fatalf("printReport() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"static/data", "TAG", "genre_title", "skipped notes.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), true); err != nil {
		t.Fatalf("printReport() error = %v", err)
	}

	var got importer.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[1].Failed != 1 {
		t.Errorf("report = %+v", got)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := map[string]bool{"serve": false, "import": false, "migrate": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
