// Package results computes summary statistics over recorded interview
// answers, for partial and completed sessions alike.
package results

import (
	"context"

	"interview-ease/internal/domain"
	"interview-ease/internal/dto"
	"interview-ease/internal/util"
)

// Sink consumes a final results document, e.g. a JSON file writer. PDF
// rendering and email delivery live behind implementations of this port.
type Sink interface {
	Write(ctx context.Context, res *dto.InterviewResults) (reportID string, path string, err error)
}

// Summarize builds the results summary for a session. Pure: it never
// mutates the session, so repeated calls without an intervening submission
// return identical output.
//
// The facial session is optional. When nil or empty, the facial block is
// omitted and FacialAvailable is false; no placeholder data is invented.
func Summarize(session *domain.Session, facial *domain.FacialSession) *dto.InterviewResults {
	answered := session.AnsweredCount()
	total := len(session.Questions)

	var correct int
	var similaritySum float64
	categorySums := make(map[string]float64)
	categoryCounts := make(map[string]int)
	questions := make([]dto.QuestionResult, 0, answered)

	for i, answer := range session.Answers {
		if answer.IsCorrect {
			correct++
		}
		similaritySum += answer.Similarity
		categorySums[answer.Category] += answer.Similarity
		categoryCounts[answer.Category]++
		questions = append(questions, dto.QuestionResult{
			Order:           i + 1,
			Question:        answer.Question,
			UserAnswer:      answer.UserAnswer,
			SimilarityScore: util.Round4(answer.Similarity),
			IsCorrect:       answer.IsCorrect,
			Category:        answer.Category,
		})
	}

	// Guard the zero-answer case: no NaN may ever reach the response.
	var accuracy, avgSimilarity float64
	if answered > 0 {
		accuracy = 100 * float64(correct) / float64(answered)
		avgSimilarity = similaritySum / float64(answered)
	}

	perCategory := make(map[string]float64, len(categorySums))
	for category, sum := range categorySums {
		perCategory[category] = util.Round4(sum / float64(categoryCounts[category]))
	}

	// Final displayed score on the 0-10 scale. Negative average similarity
	// is pathological (anti-correlated text); floor the display at 0.
	display := avgSimilarity * 10
	if display < 0 {
		display = 0
	}

	res := &dto.InterviewResults{
		SessionID:      session.ID,
		Score:          util.Round2(display),
		AccuracyPct:    util.Round2(accuracy),
		CorrectAnswers: correct,
		AnsweredCount:  answered,
		TotalQuestions: total,
		AvgSimilarity:  util.Round4(avgSimilarity),
		PerCategoryAvg: perCategory,
		IsComplete:     session.IsComplete(),
		Questions:      questions,
	}

	if res.IsComplete {
		res.Status = "completed"
		res.CompletionStatus = "fully_completed"
	} else {
		res.Status = "partial"
		res.CompletionStatus = "partially_completed"
		res.RemainingQuestions = total - answered
		res.Message = "Interview not finished: partial results only."
	}

	if facial != nil && facial.FramesAnalyzed > 0 {
		res.FacialAvailable = true
		res.Facial = facialData(facial)
	}

	return res
}

func facialData(facial *domain.FacialSession) *dto.FacialData {
	var attentionSum float64
	for _, a := range facial.AttentionScores {
		attentionSum += a
	}
	var avgAttention float64
	if len(facial.AttentionScores) > 0 {
		avgAttention = attentionSum / float64(len(facial.AttentionScores))
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, emotion := range facial.Emotions {
		if counts[emotion] == 0 {
			order = append(order, emotion)
		}
		counts[emotion]++
	}
	emotions := make([]dto.EmotionCount, 0, len(order))
	dominant := ""
	for _, emotion := range order {
		emotions = append(emotions, dto.EmotionCount{Emotion: emotion, Count: counts[emotion]})
		if dominant == "" || counts[emotion] > counts[dominant] {
			dominant = emotion
		}
	}

	alerts := make([]dto.AlertView, 0, len(facial.Alerts))
	for _, alert := range facial.Alerts {
		alerts = append(alerts, dto.AlertView{
			Type:      alert.Type,
			Message:   alert.Message,
			Timestamp: alert.Timestamp,
		})
	}

	return &dto.FacialData{
		AttentionScores: facial.AttentionScores,
		AvgAttention:    util.Round4(avgAttention),
		DominantEmotion: dominant,
		Emotions:        emotions,
		Alerts:          alerts,
		TotalFrames:     facial.FramesAnalyzed,
	}
}
