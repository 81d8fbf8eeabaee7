package i18n

// Translator retrieves localized labels for Issue categories.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(category string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(category string, data map[string]string) string {
	switch t.lang {
	case "de":
		switch category {
		case "schema_not_found":
			return "Definition nicht im Schema"
		case "unknown_field":
			return "unbekanntes Feld"
		case "type_mismatch":
			return "falscher Typ"
		case "invalid_enum":
			return "unzulässiger Wert"
		case "parse_error":
			return "Datei nicht lesbar"
		}
	default: // "en"
		switch category {
		case "schema_not_found":
			return "definition not in schema"
		case "unknown_field":
			return "unknown field"
		case "type_mismatch":
			return "type mismatch"
		case "invalid_enum":
			return "value not allowed"
		case "parse_error":
			return "unreadable file"
		}
	}
	return category
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"de").
func SetLanguage(lang string) {
	if lang != "de" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a label for the given category using the current Translator.
func T(category string, data map[string]string) string {
	return currentTranslator.Message(category, data)
}
