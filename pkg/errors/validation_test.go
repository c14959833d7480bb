package errors

import (
	"strings"
	"testing"
)

func TestValidateItemID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid hex", "9f0d4a1b2c3d4e5f60718293a4b5c6d7", false},
		{"valid mixed", "abcdefghijklmnop351887a95607abd", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"slash", "abc/def", true},
		{"backslash", "abc\\def", true},
		{"query", "abc?x=1", true},
		{"fragment", "abc#x", true},
		{"percent", "abc%2F", true},
		{"traversal", "..", true},
		{"space", "abc def", true},
		{"null byte", "abc\x00", true},
		{"newline", "abc\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItemID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItemID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidItemID) {
				t.Errorf("expected ErrCodeInvalidItemID, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateItemIDs(t *testing.T) {
	if err := ValidateItemIDs([]string{"a", "b"}); err != nil {
		t.Errorf("valid ids should pass: %v", err)
	}
	if err := ValidateItemIDs(nil); err != nil {
		t.Errorf("empty list should pass: %v", err)
	}
	if err := ValidateItemIDs([]string{"a", "a"}); err == nil {
		t.Error("duplicate ids should fail")
	}
	if err := ValidateItemIDs([]string{"a", ""}); err == nil {
		t.Error("empty id should fail")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://www.arcgis.com", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://example.com", true},
		{"www.arcgis.com", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"output/graph.json", false},
		{"/tmp/graph.json", false},
		{"graph.json", false},
		{"", true},
		{"   ", true},
		{"output/", true},
		{"out\x00.json", true},
	}

	for _, tt := range tests {
		err := ValidateOutputPath(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
