package layout

import (
	"strings"
	"testing"
)

func TestRenderHeader_ShowsAccount(t *testing.T) {
	out := RenderHeader("Worksheet", "ann@example.com", "1/3 free sheets used", 120)
	for _, want := range []string{"Mathsheet", "Worksheet", "ann@example.com", "1/3 free sheets used"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHeader_CompactDropsUsage(t *testing.T) {
	out := RenderHeader("Worksheet", "ann@example.com", "1/3 free sheets used", 80)
	if strings.Contains(out, "free sheets used") {
		t.Errorf("compact header should omit usage:\n%s", out)
	}
	if !strings.Contains(out, "ann@example.com") {
		t.Errorf("compact header should keep email:\n%s", out)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected too small below min width")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected min size to fit")
	}
}
