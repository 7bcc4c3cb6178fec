package cmd

import (
	"context"
	"os"
	"testing"
)

// TestNativeFmtValidSyntax tests that valid syntax is formatted without error.
func TestNativeFmtValidSyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "flat params",
			input: "version = 1.12.5\n",
		},
		{
			name:  "nested blocks",
			input: "GAME\n{\n\tFLIGHTSTATE\n\t{\n\t}\n}\n",
		},
		{
			name:  "blank and raw lines",
			input: "GAME\n{\n\n\torphan\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			native := &Native{
				Source: writeTempSave(t, tt.input),
			}

			if err := native.Run(context.Background()); err != nil {
				t.Errorf("Native.Run() error = %v", err)
			}
		})
	}
}

// TestFmtInvalidSyntax tests that unbalanced input fails in every format.
func TestFmtInvalidSyntax(t *testing.T) {
	const input = "GAME\n{\n\ta = 1\n"

	source := writeTempSave(t, input)

	tests := []struct {
		name string
		run  func(context.Context) error
	}{
		{
			name: "native",
			run:  (&Native{Source: source}).Run,
		},
		{
			name: "json",
			run:  (&JSON{Indent: 2, Source: source}).Run,
		},
		{
			name: "yaml",
			run:  (&YAML{Indent: 2, Source: source}).Run,
		},
		{
			name: "tree",
			run:  (&Tree{Source: source}).Run,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(context.Background()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// TestFmtMissingSource tests that a nonexistent source file fails.
func TestFmtMissingSource(t *testing.T) {
	native := &Native{Source: "/nonexistent/path.sfs"}

	if err := native.Run(context.Background()); !os.IsNotExist(err) {
		t.Errorf("expected os.IsNotExist error, got %v", err)
	}
}
