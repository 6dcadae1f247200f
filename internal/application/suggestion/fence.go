package suggestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/doeshing/texturepro/internal/domain"
)

var fencePattern = regexp.MustCompile("(?s)```[A-Za-z]*[ \t]*\n?(.*?)```")

// Unwrap strips Markdown code fences from model output. Text without a fence
// is returned trimmed.
func Unwrap(text string) string {
	text = strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	// unterminated fence
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		}
	}
	return strings.TrimSpace(text)
}

// ParseObject unwraps text and decodes it as JSON. When the unwrapped text is
// not valid JSON on its own, the span from the first "{" to the last "}" is
// tried instead. Every failure wraps domain.ErrMalformedResponse.
func ParseObject(text string) (any, error) {
	body := Unwrap(text)
	if body == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrMalformedResponse)
	}

	var out any
	if err := sonic.UnmarshalString(body, &out); err == nil {
		return out, nil
	}

	start := strings.IndexByte(body, '{')
	end := strings.LastIndexByte(body, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in response", domain.ErrMalformedResponse)
	}
	if err := sonic.UnmarshalString(body[start:end+1], &out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return out, nil
}
