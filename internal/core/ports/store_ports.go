package ports

import "context"

// Store is the persistence boundary. Exactly one implementation is chosen
// at process start.
type Store interface {
	Kind() string
	Ping(ctx context.Context) error
	Close() error

	Users() UserRepository
	Organizations() OrganizationRepository
	Auth() AuthRepository
	Journals() JournalRepository
	Moods() MoodRepository
	Rants() RantRepository
	Therapists() TherapistRepository
	Appointments() AppointmentRepository
	Courses() CourseRepository
	Assessments() AssessmentRepository
	Surveys() SurveyRepository
	Metrics() MetricsRepository
}
