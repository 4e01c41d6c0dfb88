package theme

import "testing"

func TestApply(t *testing.T) {
	t.Cleanup(func() { Apply(Dark) })

	Apply(Light)
	if Active().Name != "light" {
		t.Fatalf("active = %q, want light", Active().Name)
	}
	if Primary != Light.Primary {
		t.Error("Primary not updated")
	}
	if Correct.GetForeground() != Light.Success {
		t.Error("Correct style not rebuilt")
	}

	Apply(Dark)
	if Text != Dark.Text {
		t.Error("Text not restored")
	}
}

func TestByName(t *testing.T) {
	if ByName("light").Name != "light" {
		t.Error("light not found")
	}
	for _, n := range []string{"dark", "", "solarized"} {
		if ByName(n).Name != "dark" {
			t.Errorf("ByName(%q) should fall back to dark", n)
		}
	}
}
