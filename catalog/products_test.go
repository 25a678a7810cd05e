package catalog

import "testing"

func int64p(v int64) *int64 { return &v }

func strp(v string) *string { return &v }

func TestProductPatchRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		patch productPatch
	}{
		{"negative amount", productPatch{Amount: int64p(-100)}},
		{"negative platform fee", productPatch{PlatformFee: int64p(-1)}},
		{"negative express fee", productPatch{ExpressFee: int64p(-50)}},
		{"negative delivery fee", productPatch{DeliveryFee: int64p(-50)}},
		{"blank name", productPatch{Name: strp("   ")}},
		{"blank category", productPatch{CategoryID: strp("")}},
		{"empty patch", productPatch{}},
	}
	for _, tc := range cases {
		if _, err := tc.patch.updateDoc(); err == nil {
			t.Errorf("%s accepted, want error", tc.name)
		}
	}
}

func TestProductPatchBuildsUpdate(t *testing.T) {
	patch := productPatch{
		Name:        strp("  Revenue Stamp 100  "),
		Amount:      int64p(100),
		DeliveryFee: int64p(0),
	}

	update, err := patch.updateDoc()
	if err != nil {
		t.Fatalf("updateDoc: %v", err)
	}
	if len(update) != 3 {
		t.Fatalf("update has %d fields, want 3: %v", len(update), update)
	}
	if update["name"] != "Revenue Stamp 100" {
		t.Errorf("name = %q, want trimmed", update["name"])
	}
	if update["amount"] != int64(100) || update["deliveryFee"] != int64(0) {
		t.Errorf("fees = %v / %v", update["amount"], update["deliveryFee"])
	}
}
