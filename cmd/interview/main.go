// Command interview runs a mock interview in the terminal against the same
// scoring pipeline the API serves.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"interview-ease/internal/adapter/embedding"
	"interview-ease/internal/config"
	"interview-ease/internal/logger"
	"interview-ease/internal/repository/questionbank"
	"interview-ease/internal/scorer"
	"interview-ease/internal/service/selector"
	"interview-ease/internal/util"
)

func main() {
	var (
		categoriesFlag = flag.String("categories", "", "comma-separated categories (default: all)")
		perCategory    = flag.Int("per-category", 0, "questions per category (default: from config)")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	defer logger.Sync()

	bank, err := questionbank.Load(cfg.Data.QuestionBankPath)
	if err != nil {
		log.Fatalf("Failed to load question bank: %v", err)
	}

	categories := bank.Categories()
	if *categoriesFlag != "" {
		categories = categories[:0]
		for _, c := range strings.Split(*categoriesFlag, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}
	count := cfg.Interview.QuestionsPerCategory
	if *perCategory > 0 {
		count = *perCategory
	}

	embedder, err := embedding.NewLocalEmbeddingService(bank.ReferenceCorpus())
	if err != nil {
		log.Fatalf("Failed to build embedding service: %v", err)
	}
	answerScorer := scorer.New(embedder, cfg.Scoring)

	questions, err := selector.New(cfg.Interview.SelectionSeed).Select(categories, bank.All(), count)
	if err != nil {
		log.Fatalf("Failed to select questions: %v", err)
	}

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)
	var total float64
	correct := 0

	fmt.Printf("Mock interview: %d questions across %s\n\n", len(questions), strings.Join(categories, ", "))
	for i, q := range questions {
		fmt.Printf("Question %d/%d [%s]\n%s\n> ", i+1, len(questions), q.Category, q.Prompt)
		answer, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			break
		}

		similarity, isCorrect, err := answerScorer.Score(ctx, strings.TrimSpace(answer), q.ReferenceAnswers)
		if err != nil {
			log.Fatalf("Failed to score answer: %v", err)
		}
		total += similarity
		verdict := "needs work"
		if isCorrect {
			verdict = "good answer"
			correct++
		}
		fmt.Printf("Similarity %.2f (%s)\n\n", similarity, verdict)
	}

	if len(questions) > 0 {
		score := util.Round2((total / float64(len(questions))) * 10)
		if score < 0 {
			score = 0
		}
		fmt.Printf("Final score: %.2f/10 (%d of %d answers on target)\n", score, correct, len(questions))
	}
}
