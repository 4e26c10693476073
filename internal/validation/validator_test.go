package validation

import (
	"testing"

	"github.com/slide-cms-api/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func hasFieldError(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateArticleInput_Valid(t *testing.T) {
	v := New()
	in := &models.ArticleInput{
		Title:            "Morning routine",
		TextAlign:        "left",
		PublishTimeStart: strPtr("06:30"),
		PublishTimeEnd:   strPtr("09:00"),
		PublishDays:      strPtr(`["monday","wednesday","friday"]`),
	}

	if errs := v.ValidateArticleInput(in); errs != nil {
		t.Errorf("Expected valid input, got %v", errs)
	}
}

func TestValidateArticleInput_TitleRequired(t *testing.T) {
	v := New()

	errs := v.ValidateArticleInput(&models.ArticleInput{})
	if !hasFieldError(errs, "title") {
		t.Errorf("Expected title error, got %v", errs)
	}
}

func TestValidateArticleInput_TimeFormat(t *testing.T) {
	v := New()

	tests := []struct {
		value string
		valid bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"09:60", false},
		{"9am", false},
		{"09-30", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			in := &models.ArticleInput{Title: "t", PublishTimeStart: strPtr(tt.value)}
			errs := v.ValidateArticleInput(in)
			if tt.valid && hasFieldError(errs, "publishtimestart") {
				t.Errorf("Expected %q to validate, got %v", tt.value, errs)
			}
			if !tt.valid && !hasFieldError(errs, "publishtimestart") {
				t.Errorf("Expected %q to be rejected", tt.value)
			}
		})
	}
}

func TestValidateArticleInput_Weekdays(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"all sentinel", "all", true},
		{"all uppercase", "ALL", true},
		{"single day", `["monday"]`, true},
		{"several days", `["saturday","sunday"]`, true},
		{"mixed case entries", `["Monday","TUESDAY"]`, true},
		{"empty array", `[]`, true},
		{"unknown day", `["funday"]`, false},
		{"malformed json", `["monday"`, false},
		{"not an array", `{"day":"monday"}`, false},
		{"bare word", "monday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &models.ArticleInput{Title: "t", PublishDays: strPtr(tt.value)}
			errs := v.ValidateArticleInput(in)
			if tt.valid && hasFieldError(errs, "publishdays") {
				t.Errorf("Expected %q to validate, got %v", tt.value, errs)
			}
			if !tt.valid && !hasFieldError(errs, "publishdays") {
				t.Errorf("Expected %q to be rejected", tt.value)
			}
		})
	}
}

func TestValidateArticleInput_RowOverridesValidatedToo(t *testing.T) {
	v := New()
	in := &models.ArticleInput{
		Title:               "t",
		RowPublishTimeStart: strPtr("25:00"),
		RowPublishDays:      strPtr("never"),
	}

	errs := v.ValidateArticleInput(in)
	if !hasFieldError(errs, "rowpublishtimestart") {
		t.Errorf("Expected row time override to be rejected, got %v", errs)
	}
	if !hasFieldError(errs, "rowpublishdays") {
		t.Errorf("Expected row day override to be rejected, got %v", errs)
	}
}

func TestValidateArticleInput_Alignment(t *testing.T) {
	v := New()

	in := &models.ArticleInput{Title: "t", TextAlign: "justify"}
	if errs := v.ValidateArticleInput(in); !hasFieldError(errs, "textalign") {
		t.Errorf("Expected textalign rejection, got %v", errs)
	}

	in = &models.ArticleInput{Title: "t", VerticalAlign: "middle"}
	if errs := v.ValidateArticleInput(in); !hasFieldError(errs, "verticalalign") {
		t.Errorf("Expected verticalalign rejection, got %v", errs)
	}
}

func TestValidateArticleInput_ChallengeDuration(t *testing.T) {
	v := New()

	for _, d := range []int{30, 60, 90} {
		in := &models.ArticleInput{Title: "t", ChallengeDuration: intPtr(d)}
		if errs := v.ValidateArticleInput(in); errs != nil {
			t.Errorf("Expected duration %d to validate, got %v", d, errs)
		}
	}

	in := &models.ArticleInput{Title: "t", ChallengeDuration: intPtr(45)}
	if errs := v.ValidateArticleInput(in); !hasFieldError(errs, "challengeduration") {
		t.Errorf("Expected duration 45 rejection, got %v", errs)
	}
}

func TestValidateReorderRequest(t *testing.T) {
	v := New()

	if errs := v.ValidateReorderRequest(&models.ReorderRequest{OrderedIDs: []string{"a"}}); errs != nil {
		t.Errorf("Expected valid reorder request, got %v", errs)
	}
	if errs := v.ValidateReorderRequest(&models.ReorderRequest{}); !hasFieldError(errs, "orderedids") {
		t.Errorf("Expected empty ordered list rejection, got %v", errs)
	}
}

func TestValidateMediaInput(t *testing.T) {
	v := New()

	in := &models.MediaInput{Name: "clip.mp3", URL: "https://cdn.example.com/clip.mp3"}
	if errs := v.ValidateMediaInput(in); errs != nil {
		t.Errorf("Expected valid media input, got %v", errs)
	}

	errs := v.ValidateMediaInput(&models.MediaInput{})
	if !hasFieldError(errs, "name") {
		t.Errorf("Expected name requirement, got %v", errs)
	}
}
