// Package wikitext parses semi-structured data out of raw Wikipedia markup.
// It is pure text processing with no network dependency, so the extraction
// rules can be tested exhaustively against fixed fixtures.
package wikitext

import (
	"regexp"
	"strings"
)

var (
	refPattern      = regexp.MustCompile(`(?s)<ref[^>/]*/>|<ref[^>]*>.*?</ref>`)
	commentPattern  = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlTagPattern  = regexp.MustCompile(`<[^>]+>`)
	wikiLinkPattern = regexp.MustCompile(`\[\[(?:[^\]|]*\|)?([^\]|]*)\]\]`)
	templatePattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// ParseInfobox extracts the first {{Infobox ...}} block from wikitext into a
// flat key -> value map with wiki markup stripped. Keys are lowercased.
// Returns an empty map when no infobox is present.
func ParseInfobox(wikitext string) map[string]string {
	fields := make(map[string]string)

	body, ok := infoboxBody(wikitext)
	if !ok {
		return fields
	}

	// Parameters are newline-prefixed "| key = value" lines. Splitting on
	// newline+pipe keeps pipes inside [[links]] and {{templates}} intact
	// often enough for the fields this engine cares about.
	for _, line := range strings.Split(body, "\n|") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(key, "|")))
		if key == "" || strings.ContainsAny(key, "{}[]<>") {
			continue
		}
		value = CleanMarkup(value)
		if value == "" {
			continue
		}
		if _, exists := fields[key]; !exists {
			fields[key] = value
		}
	}

	return fields
}

// infoboxBody returns the brace-balanced interior of the first infobox block.
func infoboxBody(wikitext string) (string, bool) {
	idx := strings.Index(strings.ToLower(wikitext), "{{infobox")
	if idx < 0 {
		return "", false
	}

	depth := 0
	for i := idx; i < len(wikitext)-1; i++ {
		switch {
		case wikitext[i] == '{' && wikitext[i+1] == '{':
			depth++
			i++
		case wikitext[i] == '}' && wikitext[i+1] == '}':
			depth--
			i++
			if depth == 0 {
				return wikitext[idx+2 : i-1], true
			}
		}
	}

	// Unterminated infobox: take what we have.
	return wikitext[idx+2:], true
}

// CleanMarkup strips wiki links, nested templates, references, HTML tags and
// comments from a value, collapsing runs of whitespace.
func CleanMarkup(value string) string {
	value = refPattern.ReplaceAllString(value, "")
	value = commentPattern.ReplaceAllString(value, "")

	// [[target|label]] -> label, [[target]] -> target
	value = wikiLinkPattern.ReplaceAllString(value, "$1")

	// Unwrap nested templates innermost-first. The template name is dropped
	// and its arguments kept, so {{birth date|1907|11|6}} leaves the year
	// behind and {{nowrap|Paris}} leaves the city.
	for {
		cleaned := templatePattern.ReplaceAllStringFunc(value, unwrapTemplate)
		if cleaned == value {
			break
		}
		value = cleaned
	}

	value = htmlTagPattern.ReplaceAllString(value, " ")
	value = spacePattern.ReplaceAllString(value, " ")

	return strings.TrimSpace(value)
}

// unwrapTemplate turns "{{name|arg1|arg2}}" into "arg1 arg2". Named
// arguments keep only their values. Templates without arguments vanish.
func unwrapTemplate(tmpl string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(tmpl, "{{"), "}}")
	parts := strings.Split(inner, "|")
	if len(parts) < 2 {
		return " "
	}

	args := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if _, v, named := strings.Cut(part, "="); named {
			part = v
		}
		part = strings.TrimSpace(part)
		if part != "" {
			args = append(args, part)
		}
	}

	return " " + strings.Join(args, " ") + " "
}
