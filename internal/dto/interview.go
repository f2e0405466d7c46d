package dto

// StartInterviewRequest starts a new interview session.
// @Description Request body for starting an interview
type StartInterviewRequest struct {
	Categories           []string `json:"categories"`
	QuestionsPerCategory int      `json:"questions_per_category,omitempty"`
}

// QuestionView is a question as exposed to candidates. Reference answers are
// never included.
type QuestionView struct {
	Index      int    `json:"index"`
	Question   string `json:"question"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// StartInterviewResponse describes a freshly created session.
type StartInterviewResponse struct {
	SessionID      string         `json:"session_id"`
	TotalQuestions int            `json:"total_questions"`
	FirstQuestion  *QuestionView  `json:"first_question,omitempty"`
	Questions      []QuestionView `json:"questions"`
}

// GetQuestionResponse returns one question of a session.
type GetQuestionResponse struct {
	Question        QuestionView `json:"question"`
	CurrentQuestion int          `json:"current_question"`
	TotalQuestions  int          `json:"total_questions"`
}

// SubmitAnswerRequest submits the answer for the question at Index.
type SubmitAnswerRequest struct {
	Index  int    `json:"question_index"`
	Answer string `json:"answer"`
}

// SubmitAnswerResponse reports the score for one submission.
type SubmitAnswerResponse struct {
	Score             float64 `json:"score"`
	IsCorrect         bool    `json:"is_correct"`
	CurrentScore      float64 `json:"current_score"`
	IsComplete        bool    `json:"is_complete"`
	NextQuestionIndex *int    `json:"next_question_index"`
}

// QuestionResult is the per-question breakdown inside interview results.
type QuestionResult struct {
	Order           int     `json:"order"`
	Question        string  `json:"question"`
	UserAnswer      string  `json:"user_answer"`
	SimilarityScore float64 `json:"similarity_score"`
	IsCorrect       bool    `json:"is_correct"`
	Category        string  `json:"category"`
}

// InterviewResults is the summary of a partial or completed session.
type InterviewResults struct {
	SessionID          string             `json:"session_id"`
	Status             string             `json:"status"`
	Score              float64            `json:"score"`
	AccuracyPct        float64            `json:"correctness_pct"`
	CorrectAnswers     int                `json:"correct_answers"`
	AnsweredCount      int                `json:"total_questions_answered"`
	TotalQuestions     int                `json:"total_questions"`
	AvgSimilarity      float64            `json:"avg_similarity"`
	PerCategoryAvg     map[string]float64 `json:"per_category_avg"`
	IsComplete         bool               `json:"is_complete"`
	CompletionStatus   string             `json:"completion_status"`
	RemainingQuestions int                `json:"remaining_questions,omitempty"`
	Message            string             `json:"message,omitempty"`
	Questions          []QuestionResult   `json:"questions"`
	FacialAvailable    bool               `json:"facial_available"`
	Facial             *FacialData        `json:"facial_data,omitempty"`
}

// ReportResponse acknowledges a written report document.
type ReportResponse struct {
	ReportID string `json:"report_id"`
	Path     string `json:"path"`
}
