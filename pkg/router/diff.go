package router

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/techflow/launchpad/pkg/core"
)

// slots holds the content of every data-slot region of a render, split
// by whether the content is plain text or markup.
type slots struct {
	text map[string]string
	html map[string]string
}

func (sl slots) empty() bool {
	return len(sl.text) == 0 && len(sl.html) == 0
}

// buildDiff compares a render against the previous slot hashes. Without
// any slots it falls back to a full render.
func buildDiff(version uint64, html string, prev map[string]uint64) (*core.DiffPayload, map[string]uint64) {
	sl, hashes := snapshot(html)

	payload := &core.DiffPayload{
		Version:   version,
		Slots:     make(map[string]string),
		HTMLSlots: make(map[string]string),
	}

	if sl.empty() {
		if prev[fullKey] != hashes[fullKey] {
			payload.Full = html
		}
		return payload, hashes
	}

	for id, content := range sl.text {
		if prev == nil || prev[id] != hashes[id] {
			payload.Slots[id] = content
		}
	}
	for id, content := range sl.html {
		if prev == nil || prev[id] != hashes[id] {
			payload.HTMLSlots[id] = content
		}
	}
	return payload, hashes
}

// fullKey stores the hash of a slotless render.
const fullKey = "\x00full"

// snapshot extracts the slots of a render and hashes them.
func snapshot(html string) (slots, map[string]uint64) {
	sl := extractSlots(html)
	if sl.empty() {
		return sl, map[string]uint64{fullKey: xxhash.Sum64String(html)}
	}

	hashes := make(map[string]uint64, len(sl.text)+len(sl.html))
	for id, content := range sl.text {
		hashes[id] = xxhash.Sum64String(content)
	}
	for id, content := range sl.html {
		hashes[id] = xxhash.Sum64String(content)
	}
	return sl, hashes
}

// extractSlots finds data-slot regions in one pass, matching nested tags
// of the same name by depth.
func extractSlots(html string) slots {
	sl := slots{text: make(map[string]string), html: make(map[string]string)}

	const marker = `data-slot="`
	n := len(html)
	pos := 0

	for pos < n {
		idx := strings.Index(html[pos:], marker)
		if idx == -1 {
			break
		}

		idStart := pos + idx + len(marker)
		idLen := strings.IndexByte(html[idStart:], '"')
		if idLen == -1 {
			break
		}
		id := html[idStart : idStart+idLen]

		tagStart := pos + idx
		for tagStart > 0 && html[tagStart] != '<' {
			tagStart--
		}
		nameEnd := tagStart + 1
		for nameEnd < n && !isTagNameEnd(html[nameEnd]) {
			nameEnd++
		}
		tagName := html[tagStart+1 : nameEnd]

		closeAngle := strings.IndexByte(html[idStart+idLen:], '>')
		if closeAngle == -1 {
			break
		}
		contentStart := idStart + idLen + closeAngle + 1

		openTag := "<" + tagName
		closeTag := "</" + tagName + ">"
		depth := 1
		search := contentStart
		contentEnd := -1

		for depth > 0 && search < n {
			nextClose := strings.Index(html[search:], closeTag)
			if nextClose == -1 {
				break
			}
			nextClose += search

			nextOpen := strings.Index(html[search:nextClose], openTag)
			if nextOpen != -1 {
				nextOpen += search
				after := nextOpen + len(openTag)
				if after < n && isTagNameEnd(html[after]) {
					depth++
				}
				search = after
				continue
			}

			depth--
			if depth == 0 {
				contentEnd = nextClose
			}
			search = nextClose + len(closeTag)
		}

		if contentEnd == -1 {
			pos = contentStart
			continue
		}

		content := strings.TrimSpace(html[contentStart:contentEnd])
		if strings.ContainsAny(content, "<>") {
			sl.html[id] = content
		} else {
			sl.text[id] = content
		}
		// Slots nested in this one are covered by its content.
		pos = search
	}
	return sl
}

func isTagNameEnd(c byte) bool {
	return c == ' ' || c == '>' || c == '/' || c == '\t' || c == '\n'
}
