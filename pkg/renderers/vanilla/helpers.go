package vanilla

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formblob/pkg/model"
)

// FieldName is the form input name for one slot of one item. The HTTP server
// reads posted values back through ParseFieldName.
func FieldName(itemID int, slot model.Slot) string {
	return fmt.Sprintf("item.%d.%d", itemID, slot)
}

// ParseFieldName reverses FieldName.
func ParseFieldName(name string) (int, model.Slot, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(name), "item.")
	if !ok {
		return 0, 0, false
	}
	idPart, slotPart, ok := strings.Cut(rest, ".")
	if !ok {
		return 0, 0, false
	}
	id, err := strconv.Atoi(idPart)
	if err != nil || id <= 0 {
		return 0, 0, false
	}
	slot, err := strconv.Atoi(slotPart)
	if err != nil || !model.Slot(slot).Valid() {
		return 0, 0, false
	}
	return id, model.Slot(slot), true
}

func controlID(itemID int, slot model.Slot) string {
	return fmt.Sprintf("fb-item-%d-slot-%d", itemID, slot)
}

// outputRows sizes the blob text area to its content within 4..16 rows.
func outputRows(text string) int {
	rows := strings.Count(text, "\n") + 1
	rows += len([]rune(text)) / 120
	switch {
	case rows < 4:
		return 4
	case rows > 16:
		return 16
	default:
		return rows
	}
}
