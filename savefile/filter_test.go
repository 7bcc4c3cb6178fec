package savefile

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

const testSave = `GAME
{
	version = 1.12.5
	FLIGHTSTATE
	{
		UT = 12345.6
		VESSEL
		{
			name = Jool Express
			PART
			{
				name = mk1pod
				parent = -1
			}
			PART
			{
				name = RCSBlock
				parent = 0
			}
			PART
			{
				name = fuelTank
				parent = 0
				srfN = srfAttach, 0
			}
			PART
			{
				name = RCSBlock
				parent = 2
			}
			PART
			{
				name = liquidEngine
				parent = 2
				sym = 2
				attN = bottom, 2
			}
		}
		VESSEL
		{
			name = Duna Probe
			PART
			{
				name = probeCore
				parent = -1
			}
			PART
			{
				name = solarPanel
				parent = 0
			}
		}
	}
}
`

func parseTestSave(t *testing.T) *Document {
	t.Helper()

	doc, err := ParseString(context.Background(), testSave)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return doc
}

func formatDoc(t *testing.T, doc *Document) string {
	t.Helper()

	var out strings.Builder
	if err := doc.Format(context.Background(), &out); err != nil {
		t.Fatalf("format error: %v", err)
	}

	return out.String()
}

func TestPartNames(t *testing.T) {
	doc := parseTestSave(t)

	got := doc.PartNames()
	want := []string{
		"RCSBlock", "fuelTank", "liquidEngine",
		"mk1pod", "probeCore", "solarPanel",
	}

	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Listing must not mutate the document.
	if formatDoc(t, doc) != testSave {
		t.Error("PartNames modified the document")
	}
}

func TestScrubParts_RemovesAndRenumbers(t *testing.T) {
	doc := parseTestSave(t)

	removed, err := doc.ScrubParts(context.Background(), []string{"RCSBlock"})
	if err != nil {
		t.Fatalf("scrub error: %v", err)
	}

	if removed != 2 {
		t.Errorf("expected 2 parts removed, got %d", removed)
	}

	out := formatDoc(t, doc)

	if strings.Contains(out, "RCSBlock") {
		t.Error("removed part still present in output")
	}

	// Survivors shift down past the two removed parts (indexes 1 and 3).
	vessel := doc.Nodes[0].ChildrenWithKey("FLIGHTSTATE")[0].
		ChildrenWithKey("VESSEL")[0]
	parts := vessel.ChildrenWithKey("PART")

	if len(parts) != 3 {
		t.Fatalf("expected 3 surviving parts, got %d", len(parts))
	}

	checks := []struct {
		part, key, want string
	}{
		{"mk1pod", "parent", "-1"},
		{"fuelTank", "parent", "0"},
		{"fuelTank", "srfN", "srfAttach, 0"},
		{"liquidEngine", "parent", "1"},
		{"liquidEngine", "sym", "1"},
		{"liquidEngine", "attN", "bottom, 1"},
	}

	byName := make(map[string]*Node)
	for _, p := range parts {
		name, _ := p.Param(DefaultNameKey)
		byName[name] = p
	}

	for _, c := range checks {
		p, ok := byName[c.part]
		if !ok {
			t.Fatalf("part %q not found after scrub", c.part)
		}

		got, ok := p.Param(c.key)
		if !ok || got != c.want {
			t.Errorf("%s.%s: expected %q, got %q", c.part, c.key, c.want, got)
		}
	}

	// The second vessel had no matches and must be untouched.
	probe := doc.Nodes[0].ChildrenWithKey("FLIGHTSTATE")[0].
		ChildrenWithKey("VESSEL")[1]
	if got := len(probe.ChildrenWithKey("PART")); got != 2 {
		t.Errorf("expected 2 parts in untouched vessel, got %d", got)
	}
}

func TestScrubParts_MultipleNames(t *testing.T) {
	doc := parseTestSave(t)

	removed, err := doc.ScrubParts(context.Background(),
		[]string{"RCSBlock", "solarPanel"})
	if err != nil {
		t.Fatalf("scrub error: %v", err)
	}

	if removed != 3 {
		t.Errorf("expected 3 parts removed, got %d", removed)
	}

	names := doc.PartNames()
	for _, gone := range []string{"RCSBlock", "solarPanel"} {
		if slices.Contains(names, gone) {
			t.Errorf("part %q still listed after scrub", gone)
		}
	}
}

func TestScrubParts_NoMatchLeavesDocumentUnchanged(t *testing.T) {
	doc := parseTestSave(t)
	before := formatDoc(t, doc)

	removed, err := doc.ScrubParts(context.Background(), []string{"noSuchPart"})
	if err != nil {
		t.Fatalf("scrub error: %v", err)
	}

	if removed != 0 {
		t.Errorf("expected 0 parts removed, got %d", removed)
	}

	if after := formatDoc(t, doc); after != before {
		t.Error("document changed despite no matching parts")
	}
}

func TestScrubParts_EmptyNames(t *testing.T) {
	doc := parseTestSave(t)
	before := formatDoc(t, doc)

	removed, err := doc.ScrubParts(context.Background(), nil)
	if err != nil {
		t.Fatalf("scrub error: %v", err)
	}

	if removed != 0 {
		t.Errorf("expected 0 parts removed, got %d", removed)
	}

	if after := formatDoc(t, doc); after != before {
		t.Error("document changed despite empty name set")
	}
}

func TestScrubParts_Idempotent(t *testing.T) {
	doc := parseTestSave(t)
	names := []string{"RCSBlock"}

	if _, err := doc.ScrubParts(context.Background(), names); err != nil {
		t.Fatalf("first scrub error: %v", err)
	}

	once := formatDoc(t, doc)

	removed, err := doc.ScrubParts(context.Background(), names)
	if err != nil {
		t.Fatalf("second scrub error: %v", err)
	}

	if removed != 0 {
		t.Errorf("expected 0 parts removed on second scrub, got %d", removed)
	}

	if twice := formatDoc(t, doc); twice != once {
		t.Error("second scrub changed the document")
	}
}

func TestScrubParts_DanglingReference(t *testing.T) {
	// fuelTank and liquidEngine both reference mk1pod's subtree; removing
	// fuelTank leaves liquidEngine pointing at a removed index.
	input := "VESSEL\n{\n" +
		"\tPART\n\t{\n\t\tname = mk1pod\n\t\tparent = -1\n\t}\n" +
		"\tPART\n\t{\n\t\tname = fuelTank\n\t\tparent = 0\n\t}\n" +
		"\tPART\n\t{\n\t\tname = liquidEngine\n\t\tparent = 1\n\t}\n" +
		"}\n"

	doc, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	_, err = doc.ScrubParts(context.Background(), []string{"fuelTank"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, ErrDanglingReference) {
		t.Errorf("expected ErrDanglingReference, got %v", err)
	}
}

func TestScrubParts_InvalidReference(t *testing.T) {
	tests := []struct {
		name  string
		param string
	}{
		{
			name:  "non-numeric parent",
			param: "parent = axial",
		},
		{
			name:  "attachment without index",
			param: "srfN = srfAttach",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "VESSEL\n{\n" +
				"\tPART\n\t{\n\t\tname = junk\n\t}\n" +
				"\tPART\n\t{\n\t\tname = keeper\n\t\t" + tt.param + "\n\t}\n" +
				"}\n"

			doc, err := ParseString(context.Background(), input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			_, err = doc.ScrubParts(context.Background(), []string{"junk"})
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, ErrInvalidReference) {
				t.Errorf("expected ErrInvalidReference, got %v", err)
			}
		})
	}
}

func TestScrubParts_CustomKeys(t *testing.T) {
	input := "SHIP\n{\n" +
		"\tCOMPONENT\n\t{\n\t\tid = widget\n\t}\n" +
		"\tCOMPONENT\n\t{\n\t\tid = gadget\n\t}\n" +
		"}\n"

	doc, err := ParseString(context.Background(), input,
		WithPartKey("COMPONENT"), WithNameKey("id"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	removed, err := doc.ScrubParts(context.Background(), []string{"widget"})
	if err != nil {
		t.Fatalf("scrub error: %v", err)
	}

	if removed != 1 {
		t.Errorf("expected 1 part removed, got %d", removed)
	}

	if got := doc.PartNames(); !slices.Equal(got, []string{"gadget"}) {
		t.Errorf("expected [gadget], got %v", got)
	}
}
