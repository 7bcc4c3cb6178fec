package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/partclean/savefile"
)

const testSave = "GAME\n" +
	"{\n" +
	"\tFLIGHTSTATE\n" +
	"\t{\n" +
	"\t\tVESSEL\n" +
	"\t\t{\n" +
	"\t\t\tname = Jool Express\n" +
	"\t\t\tPART\n" +
	"\t\t\t{\n" +
	"\t\t\t\tname = mk1pod\n" +
	"\t\t\t\tparent = -1\n" +
	"\t\t\t}\n" +
	"\t\t\tPART\n" +
	"\t\t\t{\n" +
	"\t\t\t\tname = RCSBlock\n" +
	"\t\t\t\tparent = 0\n" +
	"\t\t\t}\n" +
	"\t\t\tPART\n" +
	"\t\t\t{\n" +
	"\t\t\t\tname = fuelTank\n" +
	"\t\t\t\tparent = 0\n" +
	"\t\t\t}\n" +
	"\t\t}\n" +
	"\t}\n" +
	"}\n"

// writeTempSave writes content to a temp file and returns its path.
func writeTempSave(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "partclean-test-*.sfs")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	return tmpfile.Name()
}

func TestScrubRemovesParts(t *testing.T) {
	source := writeTempSave(t, testSave)
	output := filepath.Join(t.TempDir(), "out.sfs")

	scrub := &Scrub{
		Output: output,
		Source: source,
		Parts:  []string{"RCSBlock"},
	}

	if err := scrub.Run(context.Background()); err != nil {
		t.Fatalf("Scrub.Run() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	out := string(data)

	if strings.Contains(out, "RCSBlock") {
		t.Error("output still contains removed part")
	}

	for _, keep := range []string{"mk1pod", "fuelTank"} {
		if !strings.Contains(out, keep) {
			t.Errorf("output missing surviving part %q", keep)
		}
	}

	// fuelTank was part index 2, shifted down past the removed index 1.
	if !strings.Contains(out, "parent = 0") {
		t.Error("output missing renumbered parent reference")
	}

	// The source file must never be modified.
	orig, err := os.ReadFile(source)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}

	if string(orig) != testSave {
		t.Error("source file was modified")
	}
}

func TestScrubRefusesExistingOutput(t *testing.T) {
	source := writeTempSave(t, testSave)
	output := writeTempSave(t, "already here\n")

	scrub := &Scrub{
		Output: output,
		Source: source,
		Parts:  []string{"RCSBlock"},
	}

	err := scrub.Run(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, ErrFileExists) {
		t.Errorf("expected ErrFileExists, got %v", err)
	}

	// With --force the same invocation succeeds.
	scrub.Force = true

	if err := scrub.Run(context.Background()); err != nil {
		t.Fatalf("Scrub.Run() with force error = %v", err)
	}
}

func TestScrubNoMatchStillWrites(t *testing.T) {
	source := writeTempSave(t, testSave)
	output := filepath.Join(t.TempDir(), "out.sfs")

	scrub := &Scrub{
		Output: output,
		Source: source,
		Parts:  []string{"noSuchPart"},
	}

	if err := scrub.Run(context.Background()); err != nil {
		t.Fatalf("Scrub.Run() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if string(data) != testSave {
		t.Error("output differs from source despite no matching parts")
	}
}

func TestScrubMalformedInput(t *testing.T) {
	source := writeTempSave(t, "GAME\n{\n\tunclosed = 1\n")

	scrub := &Scrub{
		Source: source,
		Parts:  []string{"RCSBlock"},
	}

	err := scrub.Run(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, savefile.ErrUnbalancedBrace) {
		t.Errorf("expected ErrUnbalancedBrace, got %v", err)
	}
}

func TestCleanedPath(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "with extension",
			source: "persistent.sfs",
			want:   "persistent.cleaned.sfs",
		},
		{
			name:   "with directory",
			source: "saves/quicksave.sfs",
			want:   "saves/quicksave.cleaned.sfs",
		},
		{
			name:   "without extension",
			source: "persistent",
			want:   "persistent.cleaned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanedPath(tt.source); got != tt.want {
				t.Errorf("cleanedPath(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestListParts(t *testing.T) {
	doc, err := savefile.ParseString(context.Background(), testSave)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := listParts(doc, &buf); err != nil {
		t.Fatalf("listParts error: %v", err)
	}

	want := "RCSBlock\nfuelTank\nmk1pod\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
