package cert

import (
	"strings"
	"testing"
	"time"
)

func TestPayloadRoundTrip(t *testing.T) {
	issued := time.Now().Unix()
	payload := SignPayload("ord123", "ES000000000001", issued)

	orderID, certNo, err := VerifyPayload(payload)
	if err != nil {
		t.Fatalf("VerifyPayload: %v", err)
	}
	if orderID != "ord123" || certNo != "ES000000000001" {
		t.Errorf("got %q/%q", orderID, certNo)
	}
}

func TestNewCertificateNo(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		certNo, err := NewCertificateNo()
		if err != nil {
			t.Fatalf("NewCertificateNo: %v", err)
		}
		if len(certNo) != 14 || !strings.HasPrefix(certNo, "ES") {
			t.Fatalf("malformed certificate number %q", certNo)
		}
		for _, c := range certNo[2:] {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit in certificate number %q", certNo)
			}
		}
		if seen[certNo] {
			t.Fatalf("certificate number %q repeated", certNo)
		}
		seen[certNo] = true
	}
}

func TestPayloadTamperDetected(t *testing.T) {
	payload := SignPayload("ord123", "ES000000000001", time.Now().Unix())

	tampered := strings.Replace(payload, "ord123", "ord999", 1)
	if _, _, err := VerifyPayload(tampered); err == nil {
		t.Error("tampered order ID accepted")
	}

	if _, _, err := VerifyPayload("not|a|valid"); err == nil {
		t.Error("malformed payload accepted")
	}
	if _, _, err := VerifyPayload(""); err == nil {
		t.Error("empty payload accepted")
	}
}
