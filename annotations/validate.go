package annotations

import "cliplabel/types"

// Validate checks annotation input the way create requires it: both
// bounds present and non-negative, end not before start, intent present.
// It returns human-readable messages, empty when the input is valid.
func Validate(in types.AnnotationInput) []string {
	errs := []string{}
	if in.StartTime == nil || *in.StartTime < 0 {
		errs = append(errs, "startTime must be a non-negative number")
	}
	if in.EndTime == nil || *in.EndTime < 0 {
		errs = append(errs, "endTime must be a non-negative number")
	}
	if in.StartTime != nil && in.EndTime != nil && *in.EndTime < *in.StartTime {
		errs = append(errs, "endTime must be >= startTime")
	}
	if in.Intent == nil || *in.Intent == "" {
		errs = append(errs, "intent is required")
	}
	return errs
}

// ValidateMerged re-checks what an update would produce, with the same
// rules as create. Used by strict-update mode before persisting.
func ValidateMerged(existing types.Annotation, in types.AnnotationInput) []string {
	preview := existing
	merge(&preview, in)
	return Validate(types.AnnotationInput{
		StartTime: &preview.StartTime,
		EndTime:   &preview.EndTime,
		Intent:    &preview.Intent,
	})
}
