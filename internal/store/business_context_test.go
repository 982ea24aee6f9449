package store

import (
	"strings"
	"testing"
)

func TestBusinessContext_Render(t *testing.T) {
	bc := BusinessContext{
		RoleOrBackground:    "Founder",
		AnnualRevenue:       "$1M-$5M",
		PrimaryBusinessGoal: "Increase Revenue",
		BusinessStage:       "Growth",
		TargetMarket:        "B2C",
		PrimaryAspiration:   "Scale operations",
	}

	rendered := bc.Render()

	for _, want := range []string{
		"Role Or Background: Founder",
		"Annual Revenue: $1M-$5M",
		"Primary Business Goal: Increase Revenue",
		"Business Stage: Growth",
		"Target Market: B2C",
		"Primary Aspiration: Scale operations",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Rendered context missing %q:\n%s", want, rendered)
		}
	}

	if strings.HasSuffix(rendered, "\n") {
		t.Error("Rendered context should not end with a newline")
	}
}

func TestDefaultBusinessContext(t *testing.T) {
	rendered := DefaultBusinessContext.Render()
	if !strings.Contains(rendered, "Aspiring entrepreneur") {
		t.Errorf("Default context lost its role: %s", rendered)
	}
}
