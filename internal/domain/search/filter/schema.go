package filter

import (
	"fmt"

	"github.com/herohuntr/huntr/internal/domain"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
)

// FieldType distinguishes numeric range fields from categorical choices.
type FieldType string

// Field types.
const (
	RangeField  FieldType = "range"
	ChoiceField FieldType = "choice"
)

// Field describes a single filterable attribute.
// Range fields use Min/Max/Step, choice fields use Choices. The empty
// choice always means "any" and is not listed.
type Field struct {
	Name    string    `json:"name"`
	Type    FieldType `json:"type"`
	Min     float64   `json:"min,omitempty"`
	Max     float64   `json:"max,omitempty"`
	Step    float64   `json:"step,omitempty"`
	Choices []string  `json:"choices,omitempty"`
}

func rangeOf(name string, lo, hi, step float64) Field {
	return Field{Name: name, Type: RangeField, Min: lo, Max: hi, Step: step}
}

func choiceOf(name string, choices ...string) Field {
	return Field{Name: name, Type: ChoiceField, Choices: append([]string(nil), choices...)}
}

// Languages are the selectable movie languages.
var Languages = []string{
	"Afrikaans", "Albanian", "Amharic", "Arabic", "Armenian", "Basque", "Bengali",
	"Bosnian", "Bulgarian", "Catalan", "Cebuano", "Chinese", "Croatian", "Czech",
	"Danish", "Dutch", "English", "Estonian", "Filipino", "Finnish", "French",
	"Georgian", "German", "Greek", "Gujarati", "Haitian Creole", "Hebrew", "Hindi",
	"Hungarian", "Icelandic", "Igbo", "Indonesian", "Irish", "Italian", "Japanese",
	"Javanese", "Kannada", "Kazakh", "Khmer", "Korean", "Kurdish", "Kyrgyz",
	"Lao", "Latvian", "Lithuanian", "Macedonian", "Malay", "Malayalam", "Maltese",
	"Marathi", "Mongolian", "Nepali", "Norwegian", "Pashto", "Persian", "Polish",
	"Portuguese", "Punjabi", "Romanian", "Russian", "Serbian", "Sesotho", "Shona",
	"Sindhi", "Sinhala", "Slovak", "Slovenian", "Somali", "Spanish", "Sundanese",
	"Swahili", "Swedish", "Tagalog", "Tamil", "Telugu", "Thai", "Turkish", "Ukrainian",
	"Urdu", "Uzbek", "Vietnamese", "Welsh", "Xhosa", "Yiddish", "Yoruba", "Zulu",
}

var superheroSchema = []Field{
	rangeOf("intelligence", 0, 100, 1),
	rangeOf("strength", 0, 100, 1),
	rangeOf("speed", 0, 100, 1),
	rangeOf("durability", 0, 100, 1),
	rangeOf("power", 0, 100, 1),
	rangeOf("combat", 0, 100, 1),
	choiceOf("alignment", "bad", "neutral", "good"),
	choiceOf("gender", "Female", "Male"),
}

var movieSchema = []Field{
	choiceOf("type", "series", "movie"),
	rangeOf("imdbRating", 0, 10, 0.1),
	choiceOf("language", Languages...),
	rangeOf("runtime", 0, 300, 1),
	rangeOf("year", 1950, 2025, 1),
}

// SchemaFor returns the filterable fields of a kind in display order.
// The result is a copy and may be modified freely.
func SchemaFor(k kind.Kind) ([]Field, error) {
	fields, err := schema(k)
	if err != nil {
		return nil, err
	}
	return copyFields(fields), nil
}

// schema returns the shared field table of k. Callers must not modify it.
func schema(k kind.Kind) ([]Field, error) {
	switch k {
	case kind.Superhero:
		return superheroSchema, nil
	case kind.Movie:
		return movieSchema, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, k)
	}
}

func copyFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		if f.Choices != nil {
			f.Choices = append([]string(nil), f.Choices...)
		}
		out[i] = f
	}
	return out
}

func lookup(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (f Field) allows(choice string) bool {
	if choice == "" {
		return true
	}
	for _, c := range f.Choices {
		if c == choice {
			return true
		}
	}
	return false
}
