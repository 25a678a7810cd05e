package wizard

import (
	"net/url"
	"testing"
)

func TestQueryRoundTrip(t *testing.T) {
	raw := "state=st1&district=dt2&tehsil=th3&documentType=sale_deed" +
		"&firstPartyName=Asha+Rao&secondPartyName=B.+Kumar" +
		"&transactionValue=1000000&executionDate=2025-04-01" +
		"&propertyDescription=Flat+4B%2C+Green+Park&productId=sp9&deliveryType=door"

	q, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatal(err)
	}

	s, err := DecodeQuery(q)
	if err != nil {
		t.Fatal(err)
	}

	if s.StateID != "st1" || s.DistrictID != "dt2" || s.TehsilID != "th3" {
		t.Errorf("location fields = %q/%q/%q", s.StateID, s.DistrictID, s.TehsilID)
	}
	if s.DocumentType != "sale_deed" || s.TransactionValue != 1000000 {
		t.Errorf("document fields = %q/%d", s.DocumentType, s.TransactionValue)
	}
	if s.PropertyDesc != "Flat 4B, Green Park" {
		t.Errorf("propertyDescription = %q", s.PropertyDesc)
	}

	// Re-encoding must reproduce the exact parameter set
	got := s.EncodeQuery()
	if len(got) != len(q) {
		t.Fatalf("re-encoded %d params, want %d", len(got), len(q))
	}
	for key := range q {
		if got.Get(key) != q.Get(key) {
			t.Errorf("param %q = %q, want %q", key, got.Get(key), q.Get(key))
		}
	}
}

func TestDecodeQueryRejectsBadValues(t *testing.T) {
	if _, err := DecodeQuery(url.Values{"transactionValue": {"abc"}}); err == nil {
		t.Error("expected error for non-numeric transactionValue")
	}
	if _, err := DecodeQuery(url.Values{"transactionValue": {"-5"}}); err == nil {
		t.Error("expected error for negative transactionValue")
	}
	if _, err := DecodeQuery(url.Values{"deliveryType": {"pigeon"}}); err == nil {
		t.Error("expected error for unknown deliveryType")
	}
}

func TestEncodeQueryOmitsUnsetFields(t *testing.T) {
	s := State{StateID: "st1", DocumentType: "gift_deed"}
	q := s.EncodeQuery()
	if len(q) != 2 {
		t.Fatalf("encoded %d params, want 2: %v", len(q), q)
	}
	if _, ok := q["transactionValue"]; ok {
		t.Error("unset transactionValue must not be emitted")
	}
}

func TestMerge(t *testing.T) {
	base := State{StateID: "st1", DistrictID: "dt1"}
	merged := base.Merge(State{DistrictID: "dt2", DocumentType: "lease_deed"})

	if merged.StateID != "st1" {
		t.Errorf("stateID = %q, want st1", merged.StateID)
	}
	if merged.DistrictID != "dt2" {
		t.Errorf("districtID = %q, want dt2", merged.DistrictID)
	}
	if merged.DocumentType != "lease_deed" {
		t.Errorf("documentType = %q", merged.DocumentType)
	}
}

func TestReadyForCheckout(t *testing.T) {
	full := State{
		StateID: "st1", DistrictID: "dt1", TehsilID: "th1",
		DocumentType: "sale_deed", FirstPartyName: "A", SecondPartyName: "B",
		TransactionValue: 100, ProductID: "sp1", DeliveryType: "digital",
	}
	if err := full.ReadyForCheckout(); err != nil {
		t.Errorf("complete state rejected: %v", err)
	}

	missing := full
	missing.ProductID = ""
	if err := missing.ReadyForCheckout(); err == nil {
		t.Error("state without product accepted")
	}
}
