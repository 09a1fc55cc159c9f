package paper

import (
	"errors"
	"testing"
)

func TestProfiles_CopiesPerSheet(t *testing.T) {
	tests := []struct {
		profile Profile
		copies  int
	}{
		{Small4x6, 6},
		{LargeA4, 8},
	}

	for _, tt := range tests {
		if got := tt.profile.Copies(); got != tt.copies {
			t.Errorf("%s: expected %d copies, got %d", tt.profile.Name, tt.copies, got)
		}
	}
}

func TestProfile_WorkingSize(t *testing.T) {
	w, h := Small4x6.WorkingSize()
	if w != 4 || h != 6 {
		t.Errorf("4x6: expected 4x6 inches, got %vx%v", w, h)
	}

	w, h = LargeA4.WorkingSize()
	if w <= h {
		t.Errorf("A4: expected landscape working size, got %vx%v", w, h)
	}
	if w != LargeA4.HeightIn || h != LargeA4.WidthIn {
		t.Errorf("A4: expected swapped native size, got %vx%v", w, h)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "4x6", want: "4x6"},
		{input: "A4", want: "A4"},
		{input: " a4 ", want: "A4"},
		{input: "4X6", want: "4x6"},
		{input: "letter", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Lookup(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownProfile) {
					t.Errorf("expected ErrUnknownProfile, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name != tt.want {
				t.Errorf("expected %s, got %s", tt.want, p.Name)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	if Default().Name != "4x6" {
		t.Errorf("expected 4x6 default, got %s", Default().Name)
	}
}
