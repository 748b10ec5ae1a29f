package exercises

// Exercise is a library entry: a named movement with its categorization,
// referenced by logged workout entries.
type Exercise struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	MuscleGroup string `json:"muscle_group"`
	Description string `json:"description"`
}

// Categories lists the distinct category and muscle group values
// present in the library, used by the client filters.
type Categories struct {
	Categories   []string `json:"categories"`
	MuscleGroups []string `json:"muscle_groups"`
}
