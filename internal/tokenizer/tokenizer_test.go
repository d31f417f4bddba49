package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"uppercase folded", "Reading Comprehension", []string{"reading", "comprehension"}},
		{"leading/trailing spaces", "  hello world  ", []string{"hello", "world"}},
		{"multiple spaces between words", "hello   world", []string{"hello", "world"}},
		{"tabs and newlines", "math\tscience\nreading", []string{"math", "science", "reading"}},
		{"only whitespace", "   \t\n  ", []string{}},
		{"single word", "algebra", []string{"algebra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrefixNGrams(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  []string
	}{
		{"empty token", "", []string{}},
		{"single character too short", "a", []string{}},
		{"two characters", "re", []string{"re"}},
		{"short token", "cat", []string{"ca", "cat"}},
		{"seven characters", "reading", []string{"re", "rea", "read", "readi", "readin", "reading"}},
		{"exactly eight characters", "strategy", []string{"st", "str", "stra", "strat", "strate", "strateg", "strategy"}},
		{"longer token capped at eight", "comprehension", []string{"co", "com", "comp", "compr", "compre", "compreh", "comprehe"}},
		{"unicode counted in runes", "clé", []string{"cl", "clé"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrefixNGrams(tt.token)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PrefixNGrams(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("Math Quiz")

	for _, want := range []string{"math", "ma", "mat", "quiz", "qu", "qui"} {
		if _, ok := set[want]; !ok {
			t.Errorf("TokenSet(%q) missing %q", "Math Quiz", want)
		}
	}
	if _, ok := set["m"]; ok {
		t.Errorf("TokenSet should not store single-character prefixes")
	}
	if _, ok := set["Math"]; ok {
		t.Errorf("TokenSet should lowercase tokens")
	}

	empty := TokenSet("")
	if empty == nil {
		t.Fatal("TokenSet(\"\") returned nil, want empty map")
	}
	if len(empty) != 0 {
		t.Errorf("TokenSet(\"\") = %v, want empty", empty)
	}
}
