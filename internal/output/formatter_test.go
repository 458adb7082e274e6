package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatToon},
		{"", FormatText},
		{"bogus", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatterWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	f, err := NewFormatter(FormatJSON, path, true)
	if err != nil {
		t.Fatalf("NewFormatter error: %v", err)
	}
	if f.Colored() {
		t.Error("file output should disable color")
	}

	if err := f.Output(map[string]int{"count": 3}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["count"] != 3 {
		t.Errorf("got %v", got)
	}
}

func newBufferFormatter(format Format) (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Formatter{format: format, writer: &buf, colored: false}, &buf
}

func sampleTable() *Table {
	return NewTable(
		"Findings",
		[]string{"File", "Line", "Name"},
		[][]string{
			{"src/a.js", "4", "unused_"},
			{"src/b.js", "9", "stale_"},
		},
		nil,
		nil,
	)
}

func TestTableRenderText(t *testing.T) {
	f, buf := newBufferFormatter(FormatText)
	if err := f.Output(sampleTable()); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Findings", "src/a.js", "unused_", "stale_"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	f, buf := newBufferFormatter(FormatMarkdown)
	if err := f.Output(sampleTable()); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Findings") {
		t.Errorf("markdown output missing title:\n%s", out)
	}
	if !strings.Contains(out, "| File | Line | Name |") {
		t.Errorf("markdown output missing header row:\n%s", out)
	}
	if !strings.Contains(out, "| --- | --- | --- |") {
		t.Errorf("markdown output missing separator row:\n%s", out)
	}
}

func TestTableRenderJSONUsesData(t *testing.T) {
	table := sampleTable()
	table.Data = map[string]any{"total": 2}

	f, buf := newBufferFormatter(FormatJSON)
	if err := f.Output(table); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["total"] != float64(2) {
		t.Errorf("JSON output should serialize Data, got %v", got)
	}
}

func TestTableRenderToon(t *testing.T) {
	f, buf := newBufferFormatter(FormatToon)
	if err := f.Output(sampleTable()); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("toon output is empty")
	}
	if !strings.Contains(buf.String(), "unused_") {
		t.Errorf("toon output missing row data:\n%s", buf.String())
	}
}

func TestSectionNesting(t *testing.T) {
	s := &Section{
		Title:   "Summary",
		Content: "2 findings in 2 files",
		Sections: []Section{
			{Title: "Details", Content: "see table"},
		},
	}

	var text bytes.Buffer
	if err := s.RenderText(&text, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text.String(), "=======") {
		t.Error("top-level section should be underlined with =")
	}
	if !strings.Contains(text.String(), "-------") {
		t.Error("nested section should be underlined with -")
	}

	var md bytes.Buffer
	if err := s.RenderMarkdown(&md); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md.String(), "## Summary") || !strings.Contains(md.String(), "### Details") {
		t.Errorf("markdown nesting wrong:\n%s", md.String())
	}
}

func TestReportCombinesSections(t *testing.T) {
	r := &Report{
		Title: "deadprop",
		Sections: []Renderable{
			&Section{Title: "Summary", Content: "1 finding"},
			sampleTable(),
		},
	}

	var buf bytes.Buffer
	if err := r.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "deadprop") || !strings.Contains(out, "Summary") || !strings.Contains(out, "src/a.js") {
		t.Errorf("report text output incomplete:\n%s", out)
	}

	data, ok := r.RenderData().(map[string]any)
	if !ok {
		t.Fatalf("RenderData() = %T", r.RenderData())
	}
	if data["title"] != "deadprop" {
		t.Errorf("RenderData title = %v", data["title"])
	}
}
