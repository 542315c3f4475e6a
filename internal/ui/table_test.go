package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "CHECK", "STATUS", "DETAIL")
	tbl.Row("cargo", "ok", "1.86.0")
	tbl.Row("git", "missing", "")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"CHECK", "STATUS", "cargo", "1.86.0", "missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	cargoLine := -1
	gitLine := -1
	for i, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "cargo") {
			cargoLine = i
		}
		if strings.Contains(line, "git") {
			gitLine = i
		}
	}
	if cargoLine < 0 || gitLine < 0 || cargoLine >= gitLine {
		t.Errorf("rows out of order:\n%s", out)
	}
}

func TestTable_emptyTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A", "B")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "A") {
		t.Errorf("header missing from empty table: %q", buf.String())
	}
}
