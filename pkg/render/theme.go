package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const classTokenPrefix = "class."

// ThemeClasses merges manifest tokens with the variant overrides and returns
// the "class.*" tokens keyed without their prefix.
func ThemeClasses(selection *theme.Selection) map[string]string {
	tokens := mergedTokens(selection)
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string)
	for key, value := range tokens {
		if name, ok := strings.CutPrefix(key, classTokenPrefix); ok && name != "" {
			out[name] = strings.TrimSpace(value)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ThemeAssets resolves the asset files declared by the manifest and the
// selected variant against the asset prefix. Keys are sorted for stable
// output; variant entries win over manifest entries with the same key.
func ThemeAssets(selection *theme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	files := copyStringMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		for key, value := range variant.Assets.Files {
			if files == nil {
				files = make(map[string]string)
			}
			files[key] = value
		}
	}
	if len(files) == 0 {
		return nil
	}

	out := make([]string, 0, len(files))
	for _, key := range sortedKeys(files) {
		out = append(out, joinAsset(prefix, files[key]))
	}
	return out
}

func mergedTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := copyStringMap(selection.Manifest.Tokens)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			if tokens == nil {
				tokens = make(map[string]string)
			}
			tokens[key] = value
		}
	}
	return tokens
}

// resolveClasses combines the configured class overrides with the theme
// selection for the request.
func (c config) resolveClasses(opts Options) (map[string]string, error) {
	classes := copyStringMap(c.classes)
	if c.selector == nil {
		return classes, nil
	}

	name, variant := c.themeName, c.themeVariant
	if opts.Theme != "" {
		name = opts.Theme
	}
	if opts.Variant != "" {
		variant = opts.Variant
	}
	selection, err := c.selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	for key, value := range ThemeClasses(selection) {
		if classes == nil {
			classes = make(map[string]string)
		}
		classes[key] = value
	}
	return classes, nil
}

func joinAsset(prefix, file string) string {
	if prefix == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
