package domain

// StatusLabel returns the badge text for a status. Unknown or missing
// statuses read as todo.
func StatusLabel(s Status) string {
	switch s {
	case StatusDone:
		return "Done"
	case StatusInProgress:
		return "In progress"
	default:
		return "Todo"
	}
}

// StatusClass returns the CSS classes for a status badge.
func StatusClass(s Status) string {
	switch s {
	case StatusDone:
		return "status-pill done"
	case StatusInProgress:
		return "status-pill in-progress"
	default:
		return "status-pill todo"
	}
}

var categoryLabels = map[Category]string{
	CategoryGeneral: "General",
	CategoryWork:    "Work",
	CategoryStudy:   "Study",
	CategoryHome:    "Home",
	CategoryHobby:   "Hobby",
	CategorySport:   "Sport",
	CategoryOther:   "Other",
}

// CategoryLabel returns the badge text for a category, General when unknown.
func CategoryLabel(c Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return "General"
}

// CategoryClass returns the CSS classes for a category badge.
func CategoryClass(c Category) string {
	if _, ok := categoryLabels[c]; !ok {
		c = CategoryGeneral
	}
	return "pill cat-" + string(c)
}

var priorityLabels = map[Priority]string{
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
}

// PriorityLabel returns the badge text for a priority, Medium when unknown.
func PriorityLabel(p Priority) string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return "Medium"
}

// PriorityClass returns the CSS classes for a priority badge.
func PriorityClass(p Priority) string {
	if _, ok := priorityLabels[p]; !ok {
		p = PriorityMedium
	}
	return "pill pr-" + string(p)
}
