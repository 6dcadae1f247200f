package helpers

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/doeshing/texturepro/internal/domain"
)

// ResolveOption matches raw against the catalog for key, ignoring case and
// surrounding spaces. An empty raw value resolves to "".
func ResolveOption(catalogs domain.Catalogs, key domain.ParameterKey, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, option := range catalogs.For(key) {
		if strings.EqualFold(option, raw) {
			return option, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q (see 'texturepro catalog %s')", domain.ErrUnknownOption, key.Label(), raw, key)
}

// ResolveParameters resolves every non-empty field of raw against the catalogs.
func ResolveParameters(catalogs domain.Catalogs, raw domain.PartialParameters) (domain.PartialParameters, error) {
	var out domain.PartialParameters
	for _, key := range domain.ParameterKeys {
		value, err := ResolveOption(catalogs, key, raw.Get(key))
		if err != nil {
			return domain.PartialParameters{}, err
		}
		out = out.With(key, value)
	}
	return out, nil
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, domain.DataFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
