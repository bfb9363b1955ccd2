package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "min").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "invalid_length":
			return "長さが不正です"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "invalid_string":
			return "文字列が不正です"
		case "not_finite":
			return "有限の数値ではありません"
		case "not_multiple_of":
			return "倍数ではありません"
		case "invalid_literal":
			return "リテラル値が不正です"
		case "invalid_enum_value":
			return "列挙値が不正です"
		case "invalid_union":
			return "どの候補にも一致しません"
		case "invalid_union_discriminator":
			return "判別子が不正です"
		case "unrecognized_keys":
			return "未知のキーです"
		case "invalid_size":
			return "サイズが不正です"
		case "invalid_date":
			return "日付が不正です"
		case "invalid_value":
			return "値が不正です"
		case "custom":
			return "入力が不正です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if data != nil && data["expected"] != "" && data["received"] != "" {
				return "expected " + data["expected"] + ", received " + data["received"]
			}
			return "invalid type"
		case "invalid_length":
			return "invalid length"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "invalid_string":
			return "invalid string"
		case "not_finite":
			return "not finite"
		case "not_multiple_of":
			return "not a multiple of the configured step"
		case "invalid_literal":
			return "invalid literal value"
		case "invalid_enum_value":
			return "invalid enum value"
		case "invalid_union":
			return "input matched no union member"
		case "invalid_union_discriminator":
			return "invalid discriminator value"
		case "unrecognized_keys":
			return "unrecognized key"
		case "invalid_size":
			return "invalid size"
		case "invalid_date":
			return "invalid date"
		case "invalid_value":
			return "invalid value"
		case "custom":
			return "invalid input"
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
