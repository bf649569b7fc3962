package models

import "testing"

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Category
		ok    bool
	}{
		{"exact lower", "balletflat", CategoryBalletflat, true},
		{"exact upper", "SNEAKER", CategorySneaker, true},
		{"case folded", "sneaker", CategorySneaker, true},
		{"mixed case", "Brogue", CategoryBrogue, true},
		{"surrounding spaces", "  clog  ", CategoryClog, true},
		{"space becomes underscore", "Ballet flat", "", false},
		{"boat lower", "boat", CategoryBoat, true},
		{"unknown", "sandal", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeCategory(tt.input)
			if ok != tt.ok {
				t.Fatalf("NormalizeCategory(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProductInStock(t *testing.T) {
	five := 5
	zero := 0

	tracked := Product{Stock: &five}
	if !tracked.InStock(5) {
		t.Error("expected quantity equal to stock to be available")
	}
	if tracked.InStock(6) {
		t.Error("expected quantity above stock to be unavailable")
	}

	soldOut := Product{Stock: &zero}
	if soldOut.InStock(1) {
		t.Error("expected sold out product to be unavailable")
	}

	untracked := Product{Stock: nil}
	if !untracked.InStock(1_000_000) {
		t.Error("expected untracked stock to never block")
	}
}
