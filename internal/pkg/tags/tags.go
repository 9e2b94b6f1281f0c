// Package tags encodes and decodes the comma-joined label set carried on
// every order. A small closed subset of labels is lifecycle-significant;
// everything else is opaque and passes through untouched.
package tags

import (
	"strings"
	"unicode"
)

// Lifecycle labels recognized (case-insensitively) by the workflow.
const (
	Processing = "Processing"
	Shipped    = "Shipped"
	Complete   = "Complete"
	Cancelled  = "Cancelled"
)

// acronymMaxLen: short all-uppercase tokens ("VIP", "COD") keep their casing.
const acronymMaxLen = 4

// Parse splits a raw tag string on commas, trimming whitespace and dropping
// empty entries. Order is preserved.
func Parse(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Normalize deduplicates labels case-insensitively (first occurrence wins)
// and title-cases each label, preserving short all-uppercase acronyms.
func Normalize(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		key := strings.ToLower(l)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, titleCase(l))
	}
	return out
}

// Serialize joins labels with ", " (the platform's canonical tag separator).
func Serialize(labels []string) string {
	return strings.Join(labels, ", ")
}

// Has reports whether labels contains label, case-insensitively.
func Has(labels []string, label string) bool {
	for _, l := range labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// Add appends label unless an equivalent one is already present.
// Reports whether the set changed.
func Add(labels []string, label string) ([]string, bool) {
	if Has(labels, label) {
		return labels, false
	}
	return append(append([]string(nil), labels...), label), true
}

// Remove drops every label equal (case-insensitively) to label.
// Reports whether the set changed.
func Remove(labels []string, label string) ([]string, bool) {
	out := make([]string, 0, len(labels))
	changed := false
	for _, l := range labels {
		if strings.EqualFold(l, label) {
			changed = true
			continue
		}
		out = append(out, l)
	}
	return out, changed
}

func titleCase(label string) string {
	if isAcronym(label) {
		return label
	}
	words := strings.Fields(label)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func isAcronym(label string) bool {
	runes := []rune(label)
	if len(runes) == 0 || len(runes) > acronymMaxLen {
		return false
	}
	upper := false
	for _, r := range runes {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper = true
		}
	}
	return upper
}
