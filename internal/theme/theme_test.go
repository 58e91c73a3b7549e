package theme

import (
	"errors"
	"testing"
)

func TestNewThresholdMap_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Threshold
		wantErr error
	}{
		{name: "empty", entries: nil, wantErr: ErrNoThresholds},
		{name: "no origin", entries: []Threshold{{0.1, "a"}}, wantErr: ErrMissingOrigin},
		{name: "unsorted", entries: []Threshold{{0, "a"}, {0.6, "b"}, {0.4, "c"}}, wantErr: ErrUnsortedThresholds},
		{name: "duplicate progress", entries: []Threshold{{0, "a"}, {0.4, "b"}, {0.4, "c"}}, wantErr: ErrUnsortedThresholds},
		{name: "out of range", entries: []Threshold{{0, "a"}, {1.2, "b"}}, wantErr: ErrProgressRange},
		{name: "empty theme", entries: []Threshold{{0, ""}}, wantErr: ErrEmptyTheme},
		{name: "valid", entries: []Threshold{{0, "a"}, {0.4, "b"}, {1, "c"}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewThresholdMap(tt.entries)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewThresholdMap() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewThresholdMap() error = %v, want %v", err, tt.wantErr)
			}
			if !IsConfigurationError(err) {
				t.Errorf("expected *ConfigurationError, got %T", err)
			}
		})
	}
}

func TestThresholdMap_Lookup(t *testing.T) {
	t.Parallel()

	m, err := NewThresholdMap([]Threshold{{0, "extreme"}, {0.4, "refined"}, {0.8, "calm"}})
	if err != nil {
		t.Fatalf("NewThresholdMap: %v", err)
	}

	tests := []struct {
		progress float64
		want     Theme
	}{
		{0, "extreme"},
		{0.39, "extreme"},
		{0.4, "refined"},
		{0.79, "refined"},
		{0.8, "calm"},
		{1, "calm"},
		{-0.5, "extreme"},
	}
	for _, tt := range tests {
		if got := m.Lookup(tt.progress); got != tt.want {
			t.Errorf("Lookup(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestThresholdMap_EntriesAreCopies(t *testing.T) {
	t.Parallel()

	src := []Threshold{{0, "a"}, {0.5, "b"}}
	m, err := NewThresholdMap(src)
	if err != nil {
		t.Fatalf("NewThresholdMap: %v", err)
	}
	src[1].Theme = "mutated"
	got := m.Entries()
	got[0].Theme = "mutated"

	if m.At(1).Theme != "b" || m.At(0).Theme != "a" {
		t.Fatalf("threshold map was mutated through a shared slice: %+v", m.Entries())
	}
}

func TestThresholdMap_Themes(t *testing.T) {
	t.Parallel()

	m, err := NewThresholdMap([]Threshold{{0, "a"}, {0.3, "b"}, {0.6, "a"}})
	if err != nil {
		t.Fatalf("NewThresholdMap: %v", err)
	}
	got := m.Themes()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Themes() = %v, want [a b]", got)
	}
	if (ThresholdMap{}).Default() != Fallback {
		t.Errorf("zero ThresholdMap Default() should be %q", Fallback)
	}
}

func TestValidateSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sections []Section
		wantErr  error
	}{
		{name: "ok", sections: []Section{{"hero", "a"}, {"work", "b"}}},
		{name: "none", sections: nil},
		{name: "missing id", sections: []Section{{"", "a"}}, wantErr: ErrEmptySectionID},
		{name: "missing theme", sections: []Section{{"hero", ""}}, wantErr: ErrEmptyTheme},
		{name: "duplicate", sections: []Section{{"hero", "a"}, {"hero", "b"}}, wantErr: ErrDuplicateSection},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateSections(tt.sections)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
