// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestCatalogComplete(t *testing.T) {
	ids := []Id{
		InvalidOffsetId,
		FileNotFoundId,
		PermissionDeniedId,
		IsDirectoryId,
		SeekOutOfRangeId,
		ConfigLoadFailedId,
		UnknownUtilityId,
	}

	for _, id := range ids {
		iss := Get(id)
		if iss == nil {
			t.Errorf("Get(%d) returned nil", id)
			continue
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, iss.Id())
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", id)
		}
	}

	if InvalidOffsetId != 1 {
		t.Errorf("InvalidOffsetId = %d, want 1", InvalidOffsetId)
	}
	if Get(0) != nil {
		t.Error("Get(0) should be nil")
	}
}

func TestValuesSorted(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not sorted at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}

func TestLinksAreCloned(t *testing.T) {
	iss := Get(InvalidOffsetId)
	links := iss.DocLinks()
	if len(links) == 0 {
		t.Fatal("InvalidOffset issue should carry a doc link")
	}
	original := links[0]
	links[0] = "modified"
	if iss.DocLinks()[0] != original {
		t.Error("DocLinks() should return a clone")
	}
}

func TestRenderAppendsLinks(t *testing.T) {
	var got string
	orig := render
	render = func(in, _ string) (string, error) {
		got = in
		return in, nil
	}
	t.Cleanup(func() { render = orig })

	if _, err := Get(ConfigLoadFailedId).Render("notty"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "## See also") || !strings.Contains(got, "<https://cuelang.org/docs/>") {
		t.Errorf("rendered markdown missing links section:\n%s", got)
	}

	if _, err := Get(UnknownUtilityId).Render("notty"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, "See also") {
		t.Error("issue without links should not get a See also section")
	}
}

func TestRenderGlamour(t *testing.T) {
	out, err := Get(FileNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "File not found") {
		t.Errorf("rendered output missing heading:\n%s", out)
	}
}
