package model

// Category groups tasks by area. The set is fixed and not user-editable.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

const (
	CategoryWork     = "work"
	CategoryPersonal = "personal"
	CategoryHealth   = "health"
	CategoryUrgent   = "urgent"
)

var categories = []Category{
	{ID: CategoryWork, Name: "Work", Color: "hsl(291, 64%, 42%)"},
	{ID: CategoryPersonal, Name: "Personal", Color: "hsl(122, 39%, 49%)"},
	{ID: CategoryHealth, Name: "Health", Color: "hsl(33, 100%, 50%)"},
	{ID: CategoryUrgent, Name: "Urgent", Color: "hsl(4, 90%, 58%)"},
}

// Categories returns a copy of the category list in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsCategory reports whether id names a known category.
func IsCategory(id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
