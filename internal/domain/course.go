package domain

// Course is an entry of the lecture catalog offered for public booking
type Course struct {
	ID             string
	Title          string
	Category       string
	Duration       string
	Description    string
	TargetAudience string
}

// FindCourse returns the course with the given id
func FindCourse(courses []Course, id string) (Course, bool) {
	for _, c := range courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}
