package app

import "trivia-quiz-service/internal/domain"

// ProgressPoint is one step of the cumulative-score curve.
type ProgressPoint struct {
	Position        int     `json:"position"` // 1-based
	CumulativeScore int     `json:"cumulativeScore"`
	Accuracy        float64 `json:"accuracy"` // running percentage
}

// GroupStat aggregates the answers sharing one grouping key.
type GroupStat struct {
	Questions int     `json:"questions"`
	Accuracy  float64 `json:"accuracy"` // mean correctness, 0..1
	AvgTime   float64 `json:"avgTime"`  // seconds
}

// TimingStats covers the time dimension of a completed session.
type TimingStats struct {
	Total   float64             `json:"total"`   // seconds
	Average float64             `json:"average"` // seconds
	Fastest domain.AnswerRecord `json:"fastest"`
	Slowest domain.AnswerRecord `json:"slowest"`
}

// Summary is everything the results screen plots, derived from one
// completed session's answer log.
type Summary struct {
	Progression        []ProgressPoint                    `json:"progression"`
	ByKind             map[domain.Kind]GroupStat          `json:"byKind"`
	ByDifficulty       map[domain.Difficulty]GroupStat    `json:"byDifficulty"`
	ByCategory         map[string]GroupStat               `json:"byCategory"`
	Timing             TimingStats                        `json:"timing"`
	Correct            int                                `json:"correct"`
	Incorrect          int                                `json:"incorrect"`
	CountByDifficulty  map[domain.Difficulty]int          `json:"countByDifficulty"`
	QuestionsPerMinute float64                            `json:"questionsPerMinute"`
}

// Summarize derives the session analytics from an ordered answer log.
// It reports ok=false on an empty log; that is the expected "quiz not
// completed yet" condition, not an error.
func Summarize(answers []domain.AnswerRecord) (Summary, bool) {
	if len(answers) == 0 {
		return Summary{}, false
	}

	summary := Summary{
		Progression:       make([]ProgressPoint, 0, len(answers)),
		ByKind:            make(map[domain.Kind]GroupStat),
		ByDifficulty:      make(map[domain.Difficulty]GroupStat),
		ByCategory:        make(map[string]GroupStat),
		CountByDifficulty: make(map[domain.Difficulty]int),
	}

	type bucket struct {
		correct int
		total   int
		time    float64
	}
	byKind := make(map[domain.Kind]*bucket)
	byDifficulty := make(map[domain.Difficulty]*bucket)
	byCategory := make(map[string]*bucket)
	accumulate := func(b *bucket, rec domain.AnswerRecord) {
		b.total++
		b.time += rec.TimeTaken
		if rec.Correct {
			b.correct++
		}
	}

	cumulative := 0
	fastest, slowest := 0, 0
	totalTime := 0.0
	for i, rec := range answers {
		if rec.Correct {
			cumulative++
		}
		summary.Progression = append(summary.Progression, ProgressPoint{
			Position:        i + 1,
			CumulativeScore: cumulative,
			Accuracy:        float64(cumulative) / float64(i+1) * 100,
		})

		if byKind[rec.Kind] == nil {
			byKind[rec.Kind] = &bucket{}
		}
		accumulate(byKind[rec.Kind], rec)
		if byDifficulty[rec.Difficulty] == nil {
			byDifficulty[rec.Difficulty] = &bucket{}
		}
		accumulate(byDifficulty[rec.Difficulty], rec)
		if byCategory[rec.Category] == nil {
			byCategory[rec.Category] = &bucket{}
		}
		accumulate(byCategory[rec.Category], rec)

		summary.CountByDifficulty[rec.Difficulty]++
		totalTime += rec.TimeTaken
		// strict comparisons keep the first occurrence on ties
		if rec.TimeTaken < answers[fastest].TimeTaken {
			fastest = i
		}
		if rec.TimeTaken > answers[slowest].TimeTaken {
			slowest = i
		}
	}

	for kind, b := range byKind {
		summary.ByKind[kind] = groupStat(b.correct, b.total, b.time)
	}
	for difficulty, b := range byDifficulty {
		summary.ByDifficulty[difficulty] = groupStat(b.correct, b.total, b.time)
	}
	for category, b := range byCategory {
		summary.ByCategory[category] = groupStat(b.correct, b.total, b.time)
	}

	summary.Correct = cumulative
	summary.Incorrect = len(answers) - cumulative
	summary.Timing = TimingStats{
		Total:   totalTime,
		Average: totalTime / float64(len(answers)),
		Fastest: answers[fastest],
		Slowest: answers[slowest],
	}
	if totalTime > 0 {
		summary.QuestionsPerMinute = float64(len(answers)) / (totalTime / 60)
	}
	return summary, true
}

func groupStat(correct, total int, time float64) GroupStat {
	return GroupStat{
		Questions: total,
		Accuracy:  float64(correct) / float64(total),
		AvgTime:   time / float64(total),
	}
}

// Rating is the display tier for a final percentage.
type Rating struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// RateScore maps a final percentage onto the four display tiers.
func RateScore(percentage float64) Rating {
	switch {
	case percentage >= 80:
		return Rating{Label: "Quiz Master! Outstanding!", Color: "#28a745"}
	case percentage >= 60:
		return Rating{Label: "Great Job! Well done!", Color: "#17a2b8"}
	case percentage >= 40:
		return Rating{Label: "Good effort! Keep practicing!", Color: "#ffc107"}
	default:
		return Rating{Label: "Challenging questions! Try again!", Color: "#dc3545"}
	}
}
