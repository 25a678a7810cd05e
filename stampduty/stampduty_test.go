package stampduty

import "testing"

func TestComputeRates(t *testing.T) {
	cases := []struct {
		docType string
		value   int64
		want    int64
	}{
		{"sale_deed", 1000000, 50000},
		{"lease_deed", 1000000, 20000},
		{"gift_deed", 1000000, 30000},
		{"power_of_attorney", 200000, 200},
		{"mortgage_deed", 1000000, 20000}, // unknown type uses default rate
		{"", 100, 2},
	}

	for _, c := range cases {
		got := Compute(c.docType, c.value, "digital")
		if got.StampAmount != c.want {
			t.Errorf("Compute(%q, %d): stampAmount = %d, want %d", c.docType, c.value, got.StampAmount, c.want)
		}
		if got.DeliveryFee != 0 {
			t.Errorf("Compute(%q, digital): deliveryFee = %d, want 0", c.docType, got.DeliveryFee)
		}
		if got.Total != got.StampAmount {
			t.Errorf("Compute(%q, digital): total = %d, want %d", c.docType, got.Total, got.StampAmount)
		}
	}
}

func TestComputeRounding(t *testing.T) {
	// 1001 * 0.001 = 1.001 -> 1; 1500 * 0.001 = 1.5 -> 2
	if got := Compute("power_of_attorney", 1001, "digital").StampAmount; got != 1 {
		t.Errorf("stampAmount = %d, want 1", got)
	}
	if got := Compute("power_of_attorney", 1500, "digital").StampAmount; got != 2 {
		t.Errorf("stampAmount = %d, want 2", got)
	}
}

func TestDoorDeliverySurcharge(t *testing.T) {
	digital := Compute("sale_deed", 1000000, "digital")
	if digital.Total != 50000 {
		t.Errorf("digital total = %d, want 50000", digital.Total)
	}

	for _, dt := range []string{"door", "physical"} {
		got := Compute("sale_deed", 1000000, dt)
		if got.DeliveryFee != DoorDeliveryFee {
			t.Errorf("deliveryFee for %q = %d, want %d", dt, got.DeliveryFee, DoorDeliveryFee)
		}
		if got.Total != 50050 {
			t.Errorf("total for %q = %d, want 50050", dt, got.Total)
		}
	}

	// surcharge independent of transaction value
	small := Compute("sale_deed", 10, "door")
	if small.DeliveryFee != DoorDeliveryFee {
		t.Errorf("deliveryFee = %d, want %d", small.DeliveryFee, DoorDeliveryFee)
	}
}

func TestRateFor(t *testing.T) {
	if r := RateFor("sale_deed"); r != 0.05 {
		t.Errorf("RateFor(sale_deed) = %v, want 0.05", r)
	}
	if r := RateFor("no_such_deed"); r != 0.02 {
		t.Errorf("RateFor(no_such_deed) = %v, want 0.02", r)
	}
}
