package query

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantTerms    []string
		wantPhrases  []string
		wantExcluded []string
		wantClause   *FieldClause
	}{
		{
			name:         "empty string",
			raw:          "",
			wantTerms:    []string{},
			wantPhrases:  []string{},
			wantExcluded: []string{},
		},
		{
			name:         "plain terms",
			raw:          "math progress",
			wantTerms:    []string{"math", "progress"},
			wantPhrases:  []string{},
			wantExcluded: []string{},
		},
		{
			name:         "quoted phrase",
			raw:          `"reading comprehension" goals`,
			wantTerms:    []string{"goals"},
			wantPhrases:  []string{"reading comprehension"},
			wantExcluded: []string{},
		},
		{
			name:         "exclusion",
			raw:          "math -algebra",
			wantTerms:    []string{"math"},
			wantPhrases:  []string{},
			wantExcluded: []string{"algebra"},
		},
		{
			name:         "leading exclusion",
			raw:          "-archived goals",
			wantTerms:    []string{"goals"},
			wantPhrases:  []string{},
			wantExcluded: []string{"archived"},
		},
		{
			name:         "hyphen inside word is not an exclusion",
			raw:          "self-paced reading",
			wantTerms:    []string{"self-paced", "reading"},
			wantPhrases:  []string{},
			wantExcluded: []string{},
		},
		{
			name:         "field clause",
			raw:          "area:reading fluency",
			wantTerms:    []string{"fluency"},
			wantPhrases:  []string{},
			wantExcluded: []string{},
			wantClause:   &FieldClause{Name: "area", Value: "reading"},
		},
		{
			name:         "only first field clause is structured",
			raw:          "area:reading level:high",
			wantTerms:    []string{"level:high"},
			wantPhrases:  []string{},
			wantExcluded: []string{},
			wantClause:   &FieldClause{Name: "area", Value: "reading"},
		},
		{
			name:         "all operators together",
			raw:          `"long division" area:math -fractions worksheet`,
			wantTerms:    []string{"worksheet"},
			wantPhrases:  []string{"long division"},
			wantExcluded: []string{"fractions"},
			wantClause:   &FieldClause{Name: "area", Value: "math"},
		},
		{
			name:         "empty phrase dropped",
			raw:          `"" math`,
			wantTerms:    []string{"math"},
			wantPhrases:  []string{},
			wantExcluded: []string{},
		},
		{
			name:         "unmatched quote degrades to terms",
			raw:          `"math goals`,
			wantTerms:    []string{`"math`, "goals"},
			wantPhrases:  []string{},
			wantExcluded: []string{},
		},
		{
			name:         "bare dash stays literal",
			raw:          "math - science",
			wantTerms:    []string{"math", "-", "science"},
			wantPhrases:  []string{},
			wantExcluded: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if !reflect.DeepEqual(got.Terms, tt.wantTerms) {
				t.Errorf("Parse(%q).Terms = %v, want %v", tt.raw, got.Terms, tt.wantTerms)
			}
			if !reflect.DeepEqual(got.ExactPhrases, tt.wantPhrases) {
				t.Errorf("Parse(%q).ExactPhrases = %v, want %v", tt.raw, got.ExactPhrases, tt.wantPhrases)
			}
			if !reflect.DeepEqual(got.Exclusions, tt.wantExcluded) {
				t.Errorf("Parse(%q).Exclusions = %v, want %v", tt.raw, got.Exclusions, tt.wantExcluded)
			}
			if !reflect.DeepEqual(got.FieldClause, tt.wantClause) {
				t.Errorf("Parse(%q).FieldClause = %+v, want %+v", tt.raw, got.FieldClause, tt.wantClause)
			}
		})
	}
}

func TestParsedQueryIsEmpty(t *testing.T) {
	if !Parse("").IsEmpty() {
		t.Error("Parse(\"\").IsEmpty() = false, want true")
	}
	if Parse("math").IsEmpty() {
		t.Error("Parse(\"math\").IsEmpty() = true, want false")
	}
	if Parse("-algebra").IsEmpty() {
		t.Error("Parse(\"-algebra\").IsEmpty() = true, want false")
	}
}
