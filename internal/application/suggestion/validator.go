// Package suggestion requests parameter combinations and prompt metadata from
// a text-generation provider and validates what comes back.
//
// Provider output is untrusted. The client unwraps and parses it; the
// validator accepts or rejects the parsed object as a whole. No failure
// escapes the package: randomization falls back to a locally computed
// selection and metadata resolves to nil.
package suggestion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

const (
	fieldTitle    = "title"
	fieldKeywords = "keywords"
	ellipsis      = "..."
)

var titlePunctuation = strings.NewReplacer(".", "", ",", "", ";", "", ":", "", "!", "", "?", "")

// Validator checks parsed suggestion objects.
type Validator struct {
	// TitleEllipsis truncates long titles to 67 characters plus "...".
	TitleEllipsis bool
	Logger        ports.Logger
}

// ValidateRandomization accepts raw only when it is an object with exactly
// the four parameter keys and every value is a member of its catalog.
func (v *Validator) ValidateRandomization(raw any, catalogs domain.Catalogs) (domain.Parameters, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.Parameters{}, domain.Reject("", fmt.Sprintf("expected object, got %T", raw))
	}
	if err := requireExactKeys(obj, parameterKeyNames()); err != nil {
		return domain.Parameters{}, err
	}

	var params domain.Parameters
	for _, key := range domain.ParameterKeys {
		value, ok := obj[string(key)].(string)
		if !ok {
			return domain.Parameters{}, domain.Reject(string(key), "value is not a string")
		}
		if !catalogs.Contains(key, value) {
			return domain.Parameters{}, domain.Reject(string(key), fmt.Sprintf("%q is not a catalog option", value))
		}
		params = params.With(key, value)
	}
	return params, nil
}

// ValidateMetadata accepts raw only when it is an object with exactly title
// and keywords, and returns the normalized metadata.
func (v *Validator) ValidateMetadata(raw any) (domain.Metadata, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.Metadata{}, domain.Reject("", fmt.Sprintf("expected object, got %T", raw))
	}
	if err := requireExactKeys(obj, []string{fieldTitle, fieldKeywords}); err != nil {
		return domain.Metadata{}, err
	}

	rawTitle, ok := obj[fieldTitle].(string)
	if !ok {
		return domain.Metadata{}, domain.Reject(fieldTitle, "value is not a string")
	}
	title := NormalizeTitle(rawTitle, v.TitleEllipsis)
	if title == "" {
		return domain.Metadata{}, domain.Reject(fieldTitle, "empty after normalization")
	}

	rawKeywords, err := keywordString(obj[fieldKeywords])
	if err != nil {
		return domain.Metadata{}, err
	}
	keywords := NormalizeKeywords(rawKeywords)
	if len(keywords) == 0 {
		return domain.Metadata{}, domain.Reject(fieldKeywords, "no keywords")
	}
	if len(keywords) < domain.MaxKeywords && v.Logger != nil {
		v.Logger.Warn("keyword count below target", map[string]interface{}{
			"count":  len(keywords),
			"target": domain.MaxKeywords,
		})
	}

	return domain.Metadata{Title: title, Keywords: keywords}, nil
}

// NormalizeTitle strips ". , ; : ! ?", collapses whitespace and truncates to
// 70 characters. With ellipsis set, long titles become 67 characters plus "...".
func NormalizeTitle(title string, withEllipsis bool) string {
	title = strings.Join(strings.Fields(titlePunctuation.Replace(title)), " ")
	runes := []rune(title)
	if len(runes) <= domain.MaxTitleLength {
		return title
	}
	if withEllipsis {
		return string(runes[:domain.MaxTitleLength-len(ellipsis)]) + ellipsis
	}
	return string(runes[:domain.MaxTitleLength])
}

// NormalizeKeywords splits a comma list, trims each token, drops empty
// tokens and keeps at most 49.
func NormalizeKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
		if len(keywords) == domain.MaxKeywords {
			break
		}
	}
	return keywords
}

// keywordString accepts a comma list or an array of strings.
func keywordString(raw any) (string, error) {
	switch value := raw.(type) {
	case string:
		return value, nil
	case []any:
		items := make([]string, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return "", domain.Reject(fieldKeywords, "array holds a non-string value")
			}
			items = append(items, s)
		}
		return strings.Join(items, ","), nil
	default:
		return "", domain.Reject(fieldKeywords, fmt.Sprintf("unsupported type %T", raw))
	}
}

func requireExactKeys(obj map[string]any, required []string) error {
	want := make(map[string]struct{}, len(required))
	for _, key := range required {
		want[key] = struct{}{}
		if _, ok := obj[key]; !ok {
			return domain.Reject(key, "missing")
		}
	}
	var extra []string
	for key := range obj {
		if _, ok := want[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return domain.Reject(strings.Join(extra, ","), "unexpected key")
	}
	return nil
}

func parameterKeyNames() []string {
	names := make([]string, 0, len(domain.ParameterKeys))
	for _, key := range domain.ParameterKeys {
		names = append(names, string(key))
	}
	return names
}
