package domain

// Button is one inline keyboard button. Exactly one of CallbackData and
// URL is set.
type Button struct {
	Text         string
	CallbackData string
	URL          string
}

// InlineKeyboard is a grid of inline buttons attached to a message.
type InlineKeyboard struct {
	Rows [][]Button
}

// Empty reports whether the keyboard has no buttons. Editing a message's
// keyboard to an empty one clears it.
func (k InlineKeyboard) Empty() bool {
	return len(k.Rows) == 0
}

// AddRow appends a row of buttons. Empty rows are dropped.
func (k *InlineKeyboard) AddRow(row []Button) {
	if len(row) == 0 {
		return
	}
	k.Rows = append(k.Rows, row)
}
