package model

// FormItem is one record of 13 labeled text values plus an identifier that is
// unique within its list.
type FormItem struct {
	ID     int             `json:"id" yaml:"id"`
	Values map[Slot]string `json:"values" yaml:"values"`
}

// NewFormItem returns an item with no slots set.
func NewFormItem(id int) FormItem {
	return FormItem{ID: id, Values: map[Slot]string{}}
}

// Value returns the text stored for slot, or "" when the slot is absent.
func (i FormItem) Value(slot Slot) string {
	return i.Values[slot]
}

// Has reports whether the slot has been assigned, even to "".
func (i FormItem) Has(slot Slot) bool {
	_, ok := i.Values[slot]
	return ok
}

// With returns a copy of the item with slot set to value.
func (i FormItem) With(slot Slot, value string) FormItem {
	out := i.Clone()
	out.Values[slot] = value
	return out
}

// Clone deep copies the value map.
func (i FormItem) Clone() FormItem {
	values := make(map[Slot]string, len(i.Values))
	for slot, value := range i.Values {
		values[slot] = value
	}
	return FormItem{ID: i.ID, Values: values}
}

// FormItemList is an ordered sequence of form items. Order drives both display
// and blob concatenation.
type FormItemList []FormItem

// Clone deep copies every item. A nil list stays nil.
func (l FormItemList) Clone() FormItemList {
	if l == nil {
		return nil
	}
	out := make(FormItemList, len(l))
	for idx, item := range l {
		out[idx] = item.Clone()
	}
	return out
}

// NextID returns max(ID)+1, or 1 for an empty list.
func (l FormItemList) NextID() int {
	next := 0
	for _, item := range l {
		if item.ID > next {
			next = item.ID
		}
	}
	return next + 1
}

// Index returns the position of the item with the given ID or -1.
func (l FormItemList) Index(id int) int {
	for idx, item := range l {
		if item.ID == id {
			return idx
		}
	}
	return -1
}

// IDs lists item identifiers in list order.
func (l FormItemList) IDs() []int {
	out := make([]int, 0, len(l))
	for _, item := range l {
		out = append(out, item.ID)
	}
	return out
}
