package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/example/hamstudy/internal/config"
	"github.com/example/hamstudy/internal/content"
	"github.com/example/hamstudy/internal/database"
	"github.com/example/hamstudy/internal/flashcards"
	"github.com/example/hamstudy/internal/reminder"
	"github.com/example/hamstudy/internal/session"
	"github.com/example/hamstudy/internal/skills"
	"github.com/example/hamstudy/internal/srs"
	"github.com/example/hamstudy/internal/streak"
	"github.com/example/hamstudy/pkg/models"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	mode := flag.String("mode", "study", "study | cards | exam | stats | import | reset | remind")
	exam := flag.String("exam", "technician", "exam level: technician | general | extra")
	count := flag.Int("count", 0, "questions per study session (0 = configured default)")
	file := flag.String("file", "", "pool spreadsheet to import (import mode)")
	focus := flag.String("focus", "", "comma-separated subelement/group codes (cards mode)")
	flag.Parse()

	level, err := models.ParseExamLevel(*exam)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := database.Connect(); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	cfg := config.Load()
	app := newApp(cfg)

	switch *mode {
	case "study":
		n := *count
		if n <= 0 {
			n = cfg.QuestionCount
		}
		err = app.runStudy(level, n)
	case "cards":
		err = app.runCards(level, cfg, *focus)
	case "exam":
		err = app.runExam(level)
	case "stats":
		err = app.runStats(level)
	case "import":
		err = app.runImport(level, *file, cfg.PoolDir)
	case "reset":
		err = app.runReset()
	case "remind":
		err = app.runRemind(level, cfg)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logrus.Fatal(err)
	}
}

// app wires the engine components over the shared database
type app struct {
	loader    *content.Loader
	scheduler *srs.Scheduler
	tracker   *flashcards.Tracker
	leveler   *skills.Leveler
	streaks   *streak.Tracker
	sessions  *database.SessionResultRepository
	stdin     *bufio.Reader
}

func newApp(cfg *config.Config) *app {
	loader := content.NewLoader(cfg.PoolDir)
	return &app{
		loader:    loader,
		scheduler: srs.NewScheduler(database.NewQuestionProgressRepository(), loader),
		tracker: flashcards.NewTracker(
			database.NewCardProgressRepository(),
			database.NewCategoryProgressRepository(),
		),
		leveler:  skills.NewLeveler(database.NewSkillRepository()),
		streaks:  streak.NewTracker(database.NewStreakRepository()),
		sessions: database.NewSessionResultRepository(),
		stdin:    bufio.NewReader(os.Stdin),
	}
}

// runStudy runs one interactive practice session
func (a *app) runStudy(level models.ExamLevel, count int) error {
	questions, err := a.scheduler.GetPracticeQuestions(level, count)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Println("No questions available - import a pool first.")
		return nil
	}

	var results []models.CardResult
	for i, q := range questions {
		fmt.Printf("\n[%d/%d] %s\n", i+1, len(questions), q.Question)
		for j, answer := range q.Answers {
			fmt.Printf("  %c) %s\n", 'A'+j, answer)
		}

		started := time.Now()
		choice, quit := a.readChoice(len(q.Answers))
		if quit {
			break
		}
		correct := choice == q.CorrectAnswer
		if correct {
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Wrong - the answer was %c.\n", 'A'+q.CorrectAnswer)
		}

		if _, err := a.scheduler.SaveQuestionProgress(q.ID, correct); err != nil {
			logrus.WithError(err).Warn("progress save failed; scheduling may not persist")
		}
		results = append(results, models.CardResult{
			CardID:     q.ID,
			CardType:   models.CardQuestion,
			Subelement: q.Subelement,
			Group:      q.Group,
			Correct:    correct,
			TimeMs:     time.Since(started).Milliseconds(),
		})
		if _, err := a.tracker.RecordCardResult(results[len(results)-1]); err != nil {
			logrus.WithError(err).Warn("mastery update failed")
		}
	}

	if len(results) == 0 {
		return nil
	}

	previous, err := a.sessions.Recent(1)
	if err != nil {
		logrus.WithError(err).Warn("could not load previous session")
	}
	var prev *models.SessionSummary
	if len(previous) > 0 {
		prev = &previous[0]
	}
	summary := session.BuildSummary(results, prev, time.Now())
	if err := a.sessions.Insert(summary); err != nil {
		logrus.WithError(err).Warn("could not store session summary")
	}

	state, err := a.streaks.RecordSession()
	if err != nil {
		logrus.WithError(err).Warn("could not update streak")
	}

	fmt.Printf("\nSession complete: %d cards, %.0f%% correct.\n",
		summary.TotalCards, summary.QuestionAccuracy*100)
	if summary.WeakestCategory != "" {
		fmt.Printf("Weakest category: %s. Strongest: %s.\n",
			summary.WeakestCategory, summary.StrongestCategory)
	}
	if state != nil {
		fmt.Printf("Streak: %d days (best %d), freeze tokens: %d.\n",
			state.CurrentStreak, state.LongestStreak, state.FreezeTokens)
	}
	return nil
}

// runCards runs a flashcard session picked by the adaptive selector
func (a *app) runCards(level models.ExamLevel, cfg *config.Config, focus string) error {
	pool, err := a.loader.QuestionPool(level)
	if err != nil {
		return err
	}
	inv := flashcards.Inventory{
		QuestionCards: lo.Map(pool, func(q models.Question, _ int) models.Flashcard {
			return models.Flashcard{
				ID:         q.ID,
				Type:       models.CardQuestion,
				Subelement: q.Subelement,
				Group:      q.Group,
				Front:      q.Question,
				Back:       q.Answers[q.CorrectAnswer],
			}
		}),
	}

	progress, err := a.tracker.AllCardProgress()
	if err != nil {
		return err
	}
	categories, err := a.tracker.CategoryProgress()
	if err != nil {
		return err
	}

	opts := flashcards.SessionOptions{QuestionCount: cfg.QuestionCount}
	if focus != "" {
		opts.Mode = flashcards.ModeFocus
		opts.FocusCategories = strings.Split(focus, ",")
	} else {
		state, err := a.streaks.Current()
		if err != nil {
			return err
		}
		rec := flashcards.RecommendMode(categories, state.LastSessionDate, time.Now())
		opts.Mode = rec.Mode
		fmt.Printf("Session mode: %s (%s)\n", rec.Mode, rec.Reason)
	}

	selection := flashcards.NewSelector().SelectCards(inv, progress, categories, opts)
	cards := selection.QuestionCards
	if len(cards) == 0 {
		fmt.Println("No cards available - import a pool first.")
		return nil
	}

	var results []models.CardResult
	for i, card := range cards {
		fmt.Printf("\n[%d/%d] %s\n", i+1, len(cards), card.Front)
		fmt.Print("(press enter to flip) ")
		if _, err := a.stdin.ReadString('\n'); err != nil {
			break
		}
		fmt.Println(card.Back)

		started := time.Now()
		fmt.Print("Did you know it? [y/n/q] ")
		line, err := a.stdin.ReadString('\n')
		if err != nil {
			break
		}
		input := strings.ToLower(strings.TrimSpace(line))
		if input == "q" {
			break
		}

		result := models.CardResult{
			CardID:     card.ID,
			CardType:   card.Type,
			Subelement: card.Subelement,
			Group:      card.Group,
			Correct:    input == "y",
			TimeMs:     time.Since(started).Milliseconds(),
		}
		if _, err := a.tracker.RecordCardResult(result); err != nil {
			logrus.WithError(err).Warn("mastery update failed")
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil
	}
	summary := session.BuildSummary(results, nil, time.Now())
	if err := a.sessions.Insert(summary); err != nil {
		logrus.WithError(err).Warn("could not store session summary")
	}
	if _, err := a.streaks.RecordSession(); err != nil {
		logrus.WithError(err).Warn("could not update streak")
	}
	fmt.Printf("\nSession complete: %d cards, %.0f%% known.\n",
		summary.TotalCards, summary.QuestionAccuracy*100)
	return nil
}

// runExam assembles and grades one full practice exam
func (a *app) runExam(level models.ExamLevel) error {
	pool, err := a.loader.QuestionPool(level)
	if err != nil {
		return err
	}

	exam := session.BuildPracticeExam(level, pool, examRand(), time.Now())
	fmt.Printf("Practice %s exam: %d questions. 74%% to pass.\n", level, len(exam.Questions))

	answers := make([]int, len(exam.Questions))
	for i, q := range exam.Questions {
		fmt.Printf("\n[%d/%d] %s\n", i+1, len(exam.Questions), q.Question)
		for j, answer := range q.Answers {
			fmt.Printf("  %c) %s\n", 'A'+j, answer)
		}
		choice, quit := a.readChoice(len(q.Answers))
		if quit {
			answers[i] = -1
			for j := i + 1; j < len(answers); j++ {
				answers[j] = -1
			}
			break
		}
		answers[i] = choice
		if _, err := a.scheduler.SaveQuestionProgress(q.ID, choice == q.CorrectAnswer); err != nil {
			logrus.WithError(err).Warn("progress save failed")
		}
	}

	result := exam.Grade(answers)
	fmt.Printf("\nScore: %d/%d (%.0f%%) - ", result.Correct, result.Total, result.Score*100)
	if result.Passed {
		fmt.Println("PASS")
	} else {
		fmt.Println("not yet; keep at it")
	}
	if len(result.Missed) > 0 {
		fmt.Printf("Missed: %s\n", strings.Join(result.Missed, ", "))
	}

	if _, err := a.streaks.RecordSession(); err != nil {
		logrus.WithError(err).Warn("could not update streak")
	}
	return nil
}

// runStats prints the dashboard numbers
func (a *app) runStats(level models.ExamLevel) error {
	stats, err := a.scheduler.GetProgressStats(level)
	if err != nil {
		return err
	}
	fmt.Printf("%s pool: %d questions\n", level, stats.Total)
	fmt.Printf("  new %d, learning %d, review %d, mastered %d\n",
		stats.New, stats.Learning, stats.Review, stats.Mastered)
	fmt.Printf("  accuracy %.0f%%, due now: %d\n", stats.Accuracy*100, stats.DueCount)

	readiness, err := a.scheduler.GetExamReadiness(level)
	if err != nil {
		return err
	}
	fmt.Printf("Estimated exam score: %.0f%% (need %.0f%%)\n",
		readiness.EstimatedScore*100, srs.PassingScore*100)
	for _, sub := range readiness.WeakSubelements {
		fmt.Printf("  weak: %s (%.0f%% over %d seen)\n", sub.Subelement, sub.Accuracy*100, sub.Seen)
	}

	mastery, err := a.leveler.AllSkills()
	if err != nil {
		return err
	}
	fmt.Println("Skills:")
	for _, m := range mastery {
		fmt.Printf("  %-20s level %d (%d/%d)\n", m.Skill, m.Level, m.Correct, m.Attempts)
	}

	state, err := a.streaks.Current()
	if err != nil {
		return err
	}
	fmt.Printf("Streak: %d days (best %d), freeze tokens %d/%d\n",
		state.CurrentStreak, state.LongestStreak, state.FreezeTokens, models.MaxFreezeTokens)

	categories, err := a.tracker.CategoryProgress()
	if err != nil {
		return err
	}
	rec := flashcards.RecommendMode(categories, state.LastSessionDate, time.Now())
	fmt.Printf("Suggested next session: %s (%s)\n", rec.Mode, rec.Reason)
	return nil
}

// runImport converts a pool spreadsheet into the loader's JSON format
func (a *app) runImport(level models.ExamLevel, file, poolDir string) error {
	if file == "" {
		return fmt.Errorf("import mode needs -file")
	}
	result, err := content.ImportPool(content.DefaultImportConfig(level, file, poolDir))
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d of %d rows (%d skipped).\n",
		result.Imported, result.TotalProcessed, result.Skipped)
	for _, e := range result.Errors {
		fmt.Println("  " + e)
	}
	return nil
}

// runReset wipes every progress namespace after confirmation
func (a *app) runReset() error {
	fmt.Print("This erases ALL progress. Type 'reset' to confirm: ")
	line, _ := a.stdin.ReadString('\n')
	if strings.TrimSpace(line) != "reset" {
		fmt.Println("Aborted.")
		return nil
	}

	repos := []interface{ Clear() error }{
		database.NewQuestionProgressRepository(),
		database.NewCardProgressRepository(),
		database.NewCategoryProgressRepository(),
		database.NewSkillRepository(),
		database.NewStreakRepository(),
		database.NewSessionResultRepository(),
	}
	for _, repo := range repos {
		if err := repo.Clear(); err != nil {
			return err
		}
	}
	fmt.Println("Progress cleared.")
	return nil
}

// runRemind keeps the reminder loop alive until interrupted
func (a *app) runRemind(level models.ExamLevel, cfg *config.Config) error {
	r := reminder.New(
		terminalNotifier{},
		&dueCounter{scheduler: a.scheduler, level: level},
		a.streaks,
		cfg.ReminderStartHour,
		cfg.ReminderEndHour,
	)
	r.Start()
	defer r.Stop()
	logrus.Info("Reminder running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logrus.Info("Reminder stopped.")
	return nil
}

// readChoice reads an A-D answer from the terminal; q quits the session
func (a *app) readChoice(numAnswers int) (choice int, quit bool) {
	for {
		fmt.Print("> ")
		line, err := a.stdin.ReadString('\n')
		if err != nil {
			return 0, true
		}
		input := strings.ToUpper(strings.TrimSpace(line))
		if input == "Q" {
			return 0, true
		}
		if len(input) == 1 && input[0] >= 'A' && input[0] < 'A'+byte(numAnswers) {
			return int(input[0] - 'A'), false
		}
		fmt.Printf("Answer A-%c, or q to quit.\n", 'A'+numAnswers-1)
	}
}

func examRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// terminalNotifier prints reminders to stdout
type terminalNotifier struct{}

func (terminalNotifier) Notify(message string) error {
	fmt.Println("[reminder] " + message)
	return nil
}

// dueCounter adapts the scheduler's stats to the reminder's needs
type dueCounter struct {
	scheduler *srs.Scheduler
	level     models.ExamLevel
}

func (d *dueCounter) DueCount() (int, error) {
	stats, err := d.scheduler.GetProgressStats(d.level)
	if err != nil {
		return 0, err
	}
	return stats.DueCount, nil
}
