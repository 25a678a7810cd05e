package orders

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{"pending", "processing"},
		{"processing", "completed"},
		{"processing", "failed"},
	}
	for _, c := range allowed {
		if !CanTransition(c.from, c.to) {
			t.Errorf("CanTransition(%q, %q) = false, want true", c.from, c.to)
		}
	}

	denied := []struct{ from, to string }{
		{"pending", "completed"},
		{"pending", "failed"},
		{"completed", "processing"},
		{"completed", "pending"},
		{"failed", "processing"},
		{"processing", "pending"},
		{"pending", "pending"},
		{"completed", "completed"},
	}
	for _, c := range denied {
		if CanTransition(c.from, c.to) {
			t.Errorf("CanTransition(%q, %q) = true, want false", c.from, c.to)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "completed", "failed"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "shipped", "PENDING"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}
