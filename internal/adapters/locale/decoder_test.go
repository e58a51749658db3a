package locale

import "testing"

func TestDecoder_Decode(t *testing.T) {
	d := NewDecoder()

	tests := []struct {
		name       string
		key        string
		wantLocale string
		wantOK     bool
	}{
		{"no bracket", "Name", "C", true},
		{"simple region", "Name[de_DE]", "de_DE", true},
		{"language only", "Comment[fr]", "fr", true},
		{"utf8 suffix stripped", "Name[de_DE.UTF-8]", "de_DE", true},
		{"utf8 lowercase stripped", "Name[de_DE.utf-8]", "de_DE", true},
		{"iso suffix stripped", "Name[de_DE.ISO-8859-1]", "de_DE", true},
		{"modifier preserved", "Name[sr@latin]", "sr@latin", true},
		{"invalid token", "Name[123]", "", false},
		{"unterminated bracket", "Name[de_DE", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locale, ok := d.Decode(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && locale != tt.wantLocale {
				t.Errorf("locale = %q, want %q", locale, tt.wantLocale)
			}
		})
	}
}
