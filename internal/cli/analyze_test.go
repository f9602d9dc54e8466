package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domain "github.com/phazegen/hgtscan/internal/domain/analysis"
)

func runCommand(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	out := &bytes.Buffer{}
	RootCmd.SetOut(out)
	RootCmd.SetErr(out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out, err
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "isolate.fasta")
	content := ">isolate-3\n" + strings.Repeat("T", 10) + "CAGGTA" + strings.Repeat("C", 10) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "analyze", path)
	if err != nil {
		t.Fatalf("failed in analyze: %v", err)
	}

	var res domain.Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("output is not a json report: %v\n%s", err, out.String())
	}
	if res.SampleID != "isolate-3" {
		t.Errorf("sample id should come from the FASTA header: %q", res.SampleID)
	}
	if res.Summary.TransposonCount != 1 {
		t.Errorf("summary: %+v", res.Summary)
	}
}

func TestAnalyzeCommandRejectsShortSequence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.fasta")
	if err := os.WriteFile(path, []byte("ACGT"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "analyze", path); err == nil {
		t.Error("short sequence should be rejected")
	}
}

func TestPatternsCommand(t *testing.T) {
	out, err := runCommand(t, "patterns")
	if err != nil {
		t.Fatalf("failed in patterns: %v", err)
	}

	var p domain.PatternList
	if err := json.Unmarshal(out.Bytes(), &p); err != nil {
		t.Fatalf("output is not a json pattern list: %v", err)
	}
	if len(p.PlasmidPatterns) == 0 || len(p.CriticalGenes) == 0 {
		t.Errorf("pattern list: %+v", p)
	}
}
