package constants

import "time"

// User roles
const (
	RoleGuest = 0
	RoleStaff = 1
	RoleAdmin = 2
)

// FAQ categories, in display order
var FAQCategories = []struct {
	Key  string
	Name string
}{
	{"booking", "Booking & Reservations"},
	{"rooms", "Rooms & Amenities"},
	{"services", "Hotel Services"},
	{"payment", "Payment & Cancellation"},
	{"general", "General Information"},
}

// Job types
const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

// Experience levels
const (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceExecutive = "executive"
)

var ExperienceLevels = []string{ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive}

// Job application status
const (
	ApplicationSubmitted = "submitted"
	ApplicationReviewing = "reviewing"
	ApplicationInterview = "interview"
	ApplicationRejected  = "rejected"
	ApplicationHired     = "hired"
)

var ApplicationStatuses = []string{
	ApplicationSubmitted,
	ApplicationReviewing,
	ApplicationInterview,
	ApplicationRejected,
	ApplicationHired,
}

// Contact methods
var ContactMethods = []string{"email", "phone", "both"}

// Cache keys
const (
	CacheKeyCitySummaries = "cities:summaries"
	DefaultCacheTTL       = 60 * time.Minute
)

// Listing limits
const (
	SimilarRoomTypesLimit = 3
	RelatedJobsLimit      = 3
	ContactFAQLimit       = 5
	MaxResumeSize         = 5 * 1024 * 1024
)

var ResumeExtensions = []string{".pdf", ".doc", ".docx"}
