package cli

import (
	"fmt"
	"os"

	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/infra/file"
	"github.com/spf13/cobra"
)

// NewTopCmd prints the leaderboard stored in the local file.
func NewTopCmd(configPath *string) *cobra.Command {
	var limit int
	var user string
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTop(*configPath, limit, user)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show")
	cmd.Flags().StringVar(&user, "user", "", "also show this user's lifetime stats")
	return cmd
}

func runTop(configPath string, limit int, user string) error {
	cfg, err := config.Load(configPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	leaderboardPath := cfg.Leaderboard.Path
	if leaderboardPath == "" {
		leaderboardPath = "leaderboard.json"
	}

	board := file.NewStore(leaderboardPath)
	entries := board.Top(limit)
	if len(entries) == 0 {
		fmt.Println("no quiz results yet")
		return nil
	}
	for i, entry := range entries {
		fmt.Printf("%2d. %-20s %6.1f%%  %d/%d  %6.1fs  %-14s %s\n",
			i+1, entry.Username, entry.Percentage, entry.Score, entry.TotalQuestions,
			entry.TimeTaken, entry.Category, entry.Date)
	}

	if user != "" {
		stats, ok := board.Stats(user)
		if !ok {
			fmt.Printf("\nno stats for %s\n", user)
			return nil
		}
		fmt.Printf("\n%s: %d quizzes, average %.1f%%, best %.1f%%, %d questions answered, %.1fs total\n",
			user, stats.TotalQuizzes, stats.AverageScore, stats.BestScore,
			stats.TotalQuestionsAnswered, stats.TotalTimeSpent)
	}
	return nil
}
