package render

import (
	"sort"

	"github.com/goliatone/go-formwidget/pkg/widget"
)

// Assets lists what a page must load for a widget tree.
type Assets struct {
	Files     []string `json:"files,omitempty"`
	JSModules []string `json:"js_modules,omitempty"`
}

// CollectAssets walks root in pre-order and returns de-duplicated asset files
// and JS modules, keeping first-seen order.
func CollectAssets(root widget.Widget) Assets {
	var out Assets
	if root == nil {
		return out
	}
	seenFiles := make(map[string]struct{})
	seenModules := make(map[string]struct{})
	for _, w := range append([]widget.Widget{root}, widget.Descendants(root)...) {
		b := w.Core()
		out.Files = appendNew(out.Files, seenFiles, b.Assets())
		out.JSModules = appendNew(out.JSModules, seenModules, b.JSModules())
	}
	return out
}

func appendNew(dst []string, seen map[string]struct{}, items []string) []string {
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		dst = append(dst, item)
	}
	return dst
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
