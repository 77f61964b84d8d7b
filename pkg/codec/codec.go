// Package codec converts form item lists to and from the delimited blob
// format. Items are joined by a pipe and values by a comma; the full-width
// variants of both separators are accepted on input. Both directions are total
// functions: malformed blobs are normalised silently rather than rejected.
package codec

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-formblob/pkg/model"
)

const (
	// ItemSeparator joins serialized items.
	ItemSeparator = "|"
	// WideItemSeparator is accepted as an item separator when parsing.
	WideItemSeparator = "｜"
	// ValueSeparator splits values when parsing.
	ValueSeparator = ","
	// WideValueSeparator joins serialized values.
	WideValueSeparator = "，"
)

// Serialize writes every item's values in model.FieldOrder joined by the wide
// comma, then joins items with the ASCII pipe. An empty list yields "".
func Serialize(items model.FormItemList) string {
	if len(items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(items))
	values := make([]string, model.SlotCount)
	for _, item := range items {
		for pos, slot := range model.FieldOrder {
			values[pos] = item.Value(slot)
		}
		parts = append(parts, strings.Join(values, WideValueSeparator))
	}
	return strings.Join(parts, ItemSeparator)
}

// Deserialize parses a blob into a freshly numbered list. The boolean is false
// when the blob is blank or every item string trims to nothing; callers should
// then keep their current list.
func Deserialize(blob string) (model.FormItemList, bool) {
	if trim(blob) == "" {
		return nil, false
	}

	normalized := strings.ReplaceAll(blob, WideItemSeparator, ItemSeparator)

	var items model.FormItemList
	for _, raw := range strings.Split(normalized, ItemSeparator) {
		chunk := trim(raw)
		if chunk == "" {
			continue
		}
		items = append(items, decodeItem(len(items)+1, chunk))
	}

	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// Decode is Deserialize without the replacement flag; it returns nil for the
// no-op cases.
func Decode(blob string) model.FormItemList {
	items, _ := Deserialize(blob)
	return items
}

func decodeItem(id int, chunk string) model.FormItem {
	fields := strings.Split(strings.ReplaceAll(chunk, WideValueSeparator, ValueSeparator), ValueSeparator)
	for len(fields) < model.SlotCount {
		fields = append(fields, "")
	}
	fields = fields[:model.SlotCount]

	item := model.FormItem{ID: id, Values: make(map[model.Slot]string, model.SlotCount)}
	for pos, slot := range model.FieldOrder {
		item.Values[slot] = trim(fields[pos])
	}
	return item
}

// trim strips the ECMAScript whitespace set: a byte order mark counts as
// blank, NEL (U+0085) does not.
func trim(s string) string {
	return strings.TrimFunc(s, isBlank)
}

func isBlank(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}
