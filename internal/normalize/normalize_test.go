package normalize

import "testing"

func TestTagName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already normalized", "golang", "golang"},
		{"case preserved", "GoLang", "GoLang"},
		{"trim whitespace", "  dragons  ", "dragons"},
		{"multiple spaces", "slow   burn", "slow burn"},
		{"tabs and newlines", "slow\t\n burn", "slow burn"},
		{"decomposed accent", "cafe\u0301", "caf\u00e9"},
		{"composed accent unchanged", "caf\u00e9", "caf\u00e9"},
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"emoji kept", "🐉 dragons", "🐉 dragons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TagName(tt.input); got != tt.expected {
				t.Errorf("TagName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTagName_EquivalentFormsCollide(t *testing.T) {
	if TagName("  cafe\u0301 ") != TagName("caf\u00e9") {
		t.Error("decomposed and composed forms must normalize to the same name")
	}
}
