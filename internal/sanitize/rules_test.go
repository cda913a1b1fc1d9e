package sanitize

import (
	"strings"
	"testing"

	"github.com/clearcell/clearcell/internal/engine"
)

func TestMaskKeepLast(t *testing.T) {
	tests := []struct {
		name string
		text string
		keep int
		want string
	}{
		{"ssn", "123-45-6789", 4, "***-**-6789"},
		{"card dashed", "4111-1111-1111-1111", 4, "****-****-****-1111"},
		{"card bare", "4111111111111111", 4, "************1111"},
		{"shorter than keep", "123", 4, "123"},
		{"letters masked too", "AB-1234", 4, "**-1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskKeepLast(tt.text, tt.keep, DefaultMaskRune); got != tt.want {
				t.Errorf("maskKeepLast(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPseudonymizer_Stable(t *testing.T) {
	p, err := NewPseudonymizer([]byte("key-1"))
	if err != nil {
		t.Fatalf("NewPseudonymizer: %v", err)
	}

	if p.Tag("a@b.com") != p.Tag("a@b.com") {
		t.Error("tag must be stable for identical input")
	}
	if p.Tag("a@b.com") == p.Tag("c@d.com") {
		t.Error("distinct inputs must produce distinct tags")
	}

	other, err := NewPseudonymizer([]byte("key-2"))
	if err != nil {
		t.Fatalf("NewPseudonymizer: %v", err)
	}
	if p.Tag("a@b.com") == other.Tag("a@b.com") {
		t.Error("tags must depend on the key")
	}
}

func TestPseudonymizer_Placeholders(t *testing.T) {
	p, err := NewPseudonymizer([]byte("key"))
	if err != nil {
		t.Fatalf("NewPseudonymizer: %v", err)
	}

	tests := []struct {
		typ      engine.PIIType
		original string
		check    func(string) bool
		desc     string
	}{
		{engine.TypeEmail, "a@b.com", func(s string) bool { return strings.HasSuffix(s, "@example.com") }, "email-shaped"},
		{engine.TypeSSN, "123-45-6789", func(s string) bool { return strings.HasPrefix(s, "900-") }, "invalid SSN area"},
		{engine.TypePhone, "555-123-4567", func(s string) bool { return strings.HasPrefix(s, "555-555-01") }, "fictional phone range"},
		{engine.TypeName, "John Smith", func(s string) bool { return strings.HasPrefix(s, "[NAME-") }, "name tag"},
	}

	for _, tt := range tests {
		got := p.Placeholder(tt.typ, tt.original)
		if !tt.check(got) {
			t.Errorf("Placeholder(%s, %q) = %q, want %s", tt.typ, tt.original, got, tt.desc)
		}
		if strings.Contains(got, tt.original) {
			t.Errorf("placeholder %q reproduces original %q", got, tt.original)
		}
	}
}

func TestPseudonymizer_KeyTooLong(t *testing.T) {
	if _, err := NewPseudonymizer(make([]byte, 65)); err == nil {
		t.Error("expected error for oversized key")
	}
}
