package models

// RecentActivityLimit caps the number of progress records in a child summary
const RecentActivityLimit = 10

// ChildSummary is the dashboard view of one child's quiz activity
type ChildSummary struct {
	TotalQuizzes     int            `json:"totalQuizzes"`
	CompletedQuizzes int            `json:"completedQuizzes"`
	AverageScore     float64        `json:"averageScore"`
	TotalPoints      int            `json:"totalPoints"`
	RecentActivity   []UserProgress `json:"recentActivity"`
}
