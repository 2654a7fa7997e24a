package categories

import (
	"testing"

	"github.com/GregMSThompson/budget-backend/internal/models"
)

func TestDefaults(t *testing.T) {
	all := Defaults().All()
	if len(all) != 4 {
		t.Fatalf("expected 4 default categories, got %d", len(all))
	}
	if all[0].Name != "Groceries" || all[3].Type != models.TransactionIncome {
		t.Fatalf("unexpected order: %+v", all)
	}
	c, ok := Defaults().Lookup("Electronics")
	if !ok || c.Icon != "desktop" || c.Color != "#FF8C42" || !c.IsDefault() {
		t.Fatalf("lookup mismatch: %+v %v", c, ok)
	}
	if _, ok := Defaults().Lookup("Travel"); ok {
		t.Fatal("unexpected category")
	}
}

func TestParseRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"badType":   "[[category]]\nname = \"X\"\ntype = \"TRANSFER\"\n",
		"noName":    "[[category]]\ntype = \"EXPENSE\"\n",
		"duplicate": "[[category]]\nname = \"X\"\ntype = \"EXPENSE\"\n[[category]]\nname = \"X\"\ntype = \"INCOME\"\n",
		"syntax":    "[[category]\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(in)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := Defaults().All()
	all[0].Name = "changed"
	if Defaults().All()[0].Name != "Groceries" {
		t.Fatal("All must not expose internal state")
	}
}
