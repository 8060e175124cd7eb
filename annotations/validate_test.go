package annotations

import (
	"testing"

	"cliplabel/types"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		in       types.AnnotationInput
		wantErrs int
	}{
		{
			name:     "valid",
			in:       types.AnnotationInput{StartTime: f64(5), EndTime: f64(10), Intent: str("Blurry")},
			wantErrs: 0,
		},
		{
			name:     "end before start",
			in:       types.AnnotationInput{StartTime: f64(5), EndTime: f64(3), Intent: str("Blurry")},
			wantErrs: 1,
		},
		{
			name:     "equal bounds allowed",
			in:       types.AnnotationInput{StartTime: f64(5), EndTime: f64(5), Intent: str("Blurry")},
			wantErrs: 0,
		},
		{
			name:     "missing start",
			in:       types.AnnotationInput{EndTime: f64(10), Intent: str("Blurry")},
			wantErrs: 1,
		},
		{
			name:     "negative start",
			in:       types.AnnotationInput{StartTime: f64(-1), EndTime: f64(10), Intent: str("Blurry")},
			wantErrs: 1,
		},
		{
			name:     "missing intent",
			in:       types.AnnotationInput{StartTime: f64(5), EndTime: f64(10)},
			wantErrs: 1,
		},
		{
			name:     "empty intent",
			in:       types.AnnotationInput{StartTime: f64(5), EndTime: f64(10), Intent: str("")},
			wantErrs: 1,
		},
		{
			name:     "everything missing",
			in:       types.AnnotationInput{},
			wantErrs: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.in)
			if len(errs) != tt.wantErrs {
				t.Fatalf("Validate() = %v, want %d error(s)", errs, tt.wantErrs)
			}
		})
	}
}

func TestValidateMerged(t *testing.T) {
	existing := types.Annotation{
		ID:        "ann_x",
		VideoID:   "default",
		StartTime: 5,
		EndTime:   10,
		Intent:    "Blurry",
	}

	if errs := ValidateMerged(existing, types.AnnotationInput{EndTime: f64(20)}); len(errs) != 0 {
		t.Fatalf("extending end should be valid, got %v", errs)
	}
	// Moving end behind the existing start invalidates the merged record.
	if errs := ValidateMerged(existing, types.AnnotationInput{EndTime: f64(2)}); len(errs) == 0 {
		t.Fatalf("end behind existing start should be rejected")
	}
	if errs := ValidateMerged(existing, types.AnnotationInput{Intent: str("")}); len(errs) == 0 {
		t.Fatalf("blanking intent should be rejected")
	}
	// A partial update that touches nothing checked stays valid.
	if errs := ValidateMerged(existing, types.AnnotationInput{Text: str("note")}); len(errs) != 0 {
		t.Fatalf("text-only update should be valid, got %v", errs)
	}
}
