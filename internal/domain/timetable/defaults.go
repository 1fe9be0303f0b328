package domain

// DefaultRosterEntry is one teacher of the predefined roster
type DefaultRosterEntry struct {
	Name    string
	Subject string
}

// DefaultRoster is the roster inserted by the seeder on an empty store
var DefaultRoster = []DefaultRosterEntry{
	{Name: "Amina Yusuf", Subject: "Mathematics"},
	{Name: "Daniel Okello", Subject: "Physics"},
	{Name: "Grace Nambi", Subject: "Chemistry"},
	{Name: "Henry Ssemwanga", Subject: "Biology"},
	{Name: "Irene Auma", Subject: "English"},
	{Name: "Joseph Mugisha", Subject: "History"},
	{Name: "Maria Nakato", Subject: "Geography"},
	{Name: "Peter Wasswa", Subject: "Computer Science"},
}

// DefaultGrades lists the grades configured by default, in order
var DefaultGrades = []int{10, 11, 12}

// DefaultGradeSections maps each default grade to its section numbers.
// Returned as the all-grades fallback when no configs are stored.
var DefaultGradeSections = map[int][]int{
	10: {1, 2, 3, 4, 5, 6, 7, 8},
	11: {1, 2, 3, 4, 5, 6, 7, 8},
	12: {1, 2, 3, 4, 5, 6, 7},
}

// DefaultSections is the single-grade fallback for a grade with no
// stored config
var DefaultSections = []int{1, 2, 3, 4, 5, 6, 7}

// SectionsForGrade returns a copy of the default sections for grade,
// falling back to DefaultSections for unconfigured grades
func SectionsForGrade(grade int) []int {
	sections, ok := DefaultGradeSections[grade]
	if !ok {
		sections = DefaultSections
	}
	out := make([]int, len(sections))
	copy(out, sections)
	return out
}
