package translation

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// translateFunc is one stage of the shaping pipeline. Each stage may rewrite
// req.Text before calling the next stage and rewrite the output after.
type translateFunc func(ctx context.Context, req Request) (string, error)

const (
	asciiColon     = ":"
	fullWidthColon = "："
)

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// trimStage trims the output when the input carried no surrounding
// whitespace. EasyNMT sometimes pads its answers.
func trimStage(next translateFunc) translateFunc {
	return func(ctx context.Context, req Request) (string, error) {
		trimmed := req.Text == strings.TrimSpace(req.Text)

		out, err := next(ctx, req)
		if err != nil {
			return "", err
		}
		if trimmed {
			out = strings.TrimSpace(out)
		}
		return out, nil
	}
}

// wrapStage lowercases a capitalized first word and terminates the sentence
// with a colon before sending, then removes the colon it added. Chinese
// sources are passed through untouched.
func wrapStage(next translateFunc) translateFunc {
	return func(ctx context.Context, req Request) (string, error) {
		if isChineseLanguage(req.SourceLang) {
			return next(ctx, req)
		}

		req.Text = lowerLeadingCapital(req.Text)

		added := false
		if !endsWithColon(req.Text) {
			req.Text += asciiColon
			added = true
		}

		out, err := next(ctx, req)
		if err != nil {
			return "", err
		}
		if added {
			out = stripColon(out)
		}
		return out, nil
	}
}

// isChineseLanguage matches "zh" and region or script tagged variants.
func isChineseLanguage(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	return lang == "zh" || strings.HasPrefix(lang, "zh-") || strings.HasPrefix(lang, "zh_")
}

// lowerLeadingCapital turns "Contact" into "contact" but leaves "USA",
// "A" and "iPhone" alone.
func lowerLeadingCapital(text string) string {
	first, size := utf8.DecodeRuneInString(text)
	if first == utf8.RuneError || !unicode.IsUpper(first) {
		return text
	}
	second, _ := utf8.DecodeRuneInString(text[size:])
	if second == utf8.RuneError || !unicode.IsLower(second) {
		return text
	}
	return string(unicode.ToLower(first)) + text[size:]
}

func endsWithColon(text string) bool {
	return strings.HasSuffix(text, asciiColon) || strings.HasSuffix(text, fullWidthColon)
}

func stripColon(text string) string {
	if s, ok := strings.CutSuffix(text, asciiColon); ok {
		return s
	}
	if s, ok := strings.CutSuffix(text, fullWidthColon); ok {
		return s
	}
	return text
}
