package app

import "personality-quiz/internal/domain"

// State is the position of a Session in its lifecycle.
type State int

const (
	NotStarted State = iota
	InQuestion
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InQuestion:
		return "in_question"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Score is the running total of one score bucket.
type Score struct {
	Key    string `json:"key"`
	Points int    `json:"points"`
}

// Outcome is the resolved end of a play-through.
type Outcome struct {
	Key    string
	Result domain.Result
	Scores []Score
}

// Step tells the presentation layer what to render after a transition.
// Question is set while InQuestion, Outcome once Finished.
type Step struct {
	State    State
	Progress Progress
	Question domain.Question
	Outcome  *Outcome
}

// Progress locates the current question. Index equals Total once the
// session has finished.
type Progress struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// Fraction is Index/Total, the share of questions already answered.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Index) / float64(p.Total)
}

// Session walks one definition question by question and accumulates
// points per result key. It is a plain synchronous value owned by a single
// player; it is not safe for concurrent use.
type Session struct {
	def     domain.QuizDefinition
	state   State
	index   int
	order   []string
	scores  map[string]int
	outcome *Outcome
}

func NewSession() *Session {
	return &Session{}
}

// Start seeds one bucket per declared result, all at zero, and moves to
// the first question.
func (s *Session) Start(def domain.QuizDefinition) (Step, error) {
	if len(def.Questions) == 0 {
		return Step{}, domain.ErrEmptyQuiz
	}
	if def.Results.Len() == 0 {
		return Step{}, domain.ErrNoCandidateResult
	}

	*s = Session{
		def:    def,
		state:  InQuestion,
		order:  def.Results.Keys(),
		scores: make(map[string]int, def.Results.Len()),
	}
	for _, key := range s.order {
		s.scores[key] = 0
	}
	return s.step(), nil
}

// SelectAnswer adds the answer's points and advances by one question.
// Keys missing from the scores get a fresh bucket; such buckets are never
// candidates for the winner. After the last question the session resolves
// its outcome and finishes.
func (s *Session) SelectAnswer(answer domain.Answer) (Step, error) {
	if s.state != InQuestion {
		return Step{}, domain.ErrNotInQuestion
	}

	// Work on copies so a failed transition leaves the session untouched.
	order := append([]string(nil), s.order...)
	scores := make(map[string]int, len(s.scores)+len(answer.Points))
	for key, points := range s.scores {
		scores[key] = points
	}
	for _, key := range domain.SortedPointKeys(answer.Points) {
		if _, ok := scores[key]; !ok {
			order = append(order, key)
		}
		scores[key] += answer.Points[key]
	}

	next := s.index + 1
	var outcome *Outcome
	if next == len(s.def.Questions) {
		key, err := ResolveWinner(s.def.Results, scores)
		if err != nil {
			return Step{}, err
		}
		result, _ := s.def.Results.Get(key)
		outcome = &Outcome{Key: key, Result: result}
	}

	s.order, s.scores, s.index = order, scores, next
	if outcome != nil {
		outcome.Scores = s.Scores()
		s.outcome = outcome
		s.state = Finished
	}
	return s.step(), nil
}

// SelectAnswerAt selects answer i of the current question.
func (s *Session) SelectAnswerAt(i int) (Step, error) {
	q, ok := s.Current()
	if !ok {
		return Step{}, domain.ErrNotInQuestion
	}
	if i < 0 || i >= len(q.Answers) {
		return Step{}, domain.ErrAnswerOutOfRange
	}
	return s.SelectAnswer(q.Answers[i])
}

// Restart discards all progress and starts again on the same definition.
func (s *Session) Restart() (Step, error) {
	if s.state == NotStarted {
		return Step{}, domain.ErrNotStarted
	}
	return s.Start(s.def)
}

// ProgressFraction is i/N while at question i of N, 0 before the start and
// 1 once finished.
func (s *Session) ProgressFraction() float64 {
	switch s.state {
	case InQuestion:
		return s.progress().Fraction()
	case Finished:
		return 1
	}
	return 0
}

func (s *Session) State() State {
	return s.state
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (domain.Question, bool) {
	if s.state != InQuestion {
		return domain.Question{}, false
	}
	return s.def.Questions[s.index], true
}

// Outcome returns the resolved result once the session has finished.
func (s *Session) Outcome() (Outcome, bool) {
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

// Scores returns every bucket: declared results first in declaration
// order, then buckets created for unknown keys in creation order.
func (s *Session) Scores() []Score {
	out := make([]Score, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, Score{Key: key, Points: s.scores[key]})
	}
	return out
}

func (s *Session) progress() Progress {
	return Progress{Index: s.index, Total: len(s.def.Questions)}
}

func (s *Session) step() Step {
	st := Step{State: s.state, Progress: s.progress()}
	switch s.state {
	case InQuestion:
		st.Question = s.def.Questions[s.index]
	case Finished:
		outcome := *s.outcome
		st.Outcome = &outcome
	}
	return st
}
