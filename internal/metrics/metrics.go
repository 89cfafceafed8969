// Package metrics exposes Prometheus counters for the progress core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuizSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ilmkids",
		Name:      "quiz_submissions_total",
		Help:      "Quiz progress submissions, labelled by whether the quiz was completed.",
	}, []string{"completed"})

	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ilmkids",
		Name:      "points_awarded_total",
		Help:      "Sum of points awarded to users.",
	})

	BadgesGranted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ilmkids",
		Name:      "badges_granted_total",
		Help:      "Badges newly added to a user's badge set.",
	})

	VerseUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ilmkids",
		Name:      "verse_level_updates_total",
		Help:      "Verse memorization level updates, labelled by level.",
	}, []string{"level"})
)
