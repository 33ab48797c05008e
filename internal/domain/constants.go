package domain

// Business validation constants
const (
	// SeriesConfirmationThreshold series larger than this need explicit confirmation
	SeriesConfirmationThreshold = 20

	// SeriesHorizonMonths caps recurrence expansion at start + 1 year
	SeriesHorizonMonths = 12

	MaxNotesLength = 1000
	MaxFieldLength = 200
)

// Report bucketing constants
const (
	CategoryTopN         = 5
	CategoryOverflowFrom = 6 // more distinct categories than this fold into Other
	LocationTopN         = 10

	CategoryOther         = "Other"
	CategoryUncategorized = "Uncategorized"
	LocationUnknown       = "Unknown"
)

// Category key selectors for reports
const (
	CategoryKeyCourseName   = "course_name"
	CategoryKeyWorkCategory = "work_category"
)

// Dashboard constants
const (
	UpcomingWindowDays = 30
	UpcomingPreviewLen = 5
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)
