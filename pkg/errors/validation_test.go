package errors

import (
	"strings"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"stdout empty", "", false},
		{"stdout dash", "-", false},
		{"relative", "out/model.vsf", false},
		{"absolute", "/tmp/model.html", false},
		{"s3 url", "s3://bucket/key.vtkjs", false},

		{"directory", "out/", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateModelPath(t *testing.T) {
	if err := ValidateModelPath("model.dfjson"); err != nil {
		t.Errorf("ValidateModelPath() error = %v", err)
	}
	if err := ValidateModelPath(""); !Is(err, ErrCodeInvalidPath) {
		t.Errorf("ValidateModelPath(\"\") error = %v, want %s", err, ErrCodeInvalidPath)
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"six digits", "#74eded", false},
		{"no hash", "ed7474", false},
		{"with alpha", "#ed7474ff", false},
		{"short", "#abc", false},
		{"upper", "#ABCDEF", false},

		{"empty", "", true},
		{"five digits", "#12345", true},
		{"not hex", "#zzzzzz", true},
		{"named", "red", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateHexColor(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidColor)
			}
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Office_1", false},
		{"dots", "Room..Face1", false},
		{"empty", "", true},
		{"comma", "a,b", true},
		{"too long", strings.Repeat("x", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
