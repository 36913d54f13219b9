package domain

// ItemFilter selects notes or links by their boolean flags.
// Nil fields put no constraint on that flag; set fields are combined with
// AND semantics.
type ItemFilter struct {
	Reminder *bool
	Reading  *bool
}

// Reminders is a filter matching items flagged for reminders.
func Reminders() ItemFilter {
	v := true
	return ItemFilter{Reminder: &v}
}

// ReadingList is a filter matching items flagged for the reading list.
func ReadingList() ItemFilter {
	v := true
	return ItemFilter{Reading: &v}
}
