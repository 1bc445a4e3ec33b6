package i18n

// Translator retrieves localized messages for diagnostic codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "actual").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "missing":
			return "キーが見つかりません"
		case "type_mismatch":
			return "型が一致しません"
		case "unexpected_key":
			return "宣言されていないキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "max_depth":
			return "ネストが深すぎます"
		case "truncated":
			return "打ち切られました"
		case "parse_error":
			return "解析エラー"
		case "rule_violation":
			return "ビジネスルール違反"
		}
	default: // "en"
		switch code {
		case "missing":
			return "key missing"
		case "type_mismatch":
			if data != nil && data["expected"] != "" && data["actual"] != "" {
				return "expected " + data["expected"] + ", got " + data["actual"]
			}
			return "type mismatch"
		case "unexpected_key":
			return "undeclared key"
		case "duplicate_key":
			return "duplicate key"
		case "max_depth":
			return "max depth exceeded"
		case "truncated":
			return "truncated"
		case "parse_error":
			return "parse error"
		case "rule_violation":
			return "business rule violated"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
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

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
