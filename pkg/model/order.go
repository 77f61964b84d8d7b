package model

// SlotCount is the number of labeled text fields carried by each form item.
const SlotCount = 13

// Slot addresses one of the 13 fields of a form item. Valid slots are 1..13.
type Slot int

// Valid reports whether the slot falls inside 1..SlotCount.
func (s Slot) Valid() bool {
	return s >= 1 && s <= SlotCount
}

// FieldOrder lists slots in the order their values are written to a blob.
var FieldOrder = [SlotCount]Slot{1, 2, 6, 9, 10, 11, 12, 13, 3, 8, 5, 7, 4}

var slotPositions = invertOrder(FieldOrder)

// Position returns the zero-based blob position of the slot.
func Position(slot Slot) (int, bool) {
	if !slot.Valid() {
		return 0, false
	}
	return slotPositions[slot-1], true
}

// Slots returns the slots in natural order (1..13).
func Slots() []Slot {
	out := make([]Slot, SlotCount)
	for i := range out {
		out[i] = Slot(i + 1)
	}
	return out
}

func invertOrder(order [SlotCount]Slot) [SlotCount]int {
	var positions [SlotCount]int
	seen := make(map[Slot]struct{}, SlotCount)
	for pos, slot := range order {
		if !slot.Valid() {
			panic("model: field order contains an out of range slot")
		}
		if _, dup := seen[slot]; dup {
			panic("model: field order repeats a slot")
		}
		seen[slot] = struct{}{}
		positions[slot-1] = pos
	}
	return positions
}
