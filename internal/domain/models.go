package domain

import "encoding/json"

// Answer is one selectable option of a question. Points are sparse: a
// result key that is absent contributes nothing.
type Answer struct {
	Text   string         `json:"text" yaml:"text"`
	Points map[string]int `json:"points" yaml:"points"`
}

// MarshalJSON always writes points as an object, even when none are set.
func (a Answer) MarshalJSON() ([]byte, error) {
	type plain Answer
	if a.Points == nil {
		a.Points = map[string]int{}
	}
	return json.Marshal(plain(a))
}

// Question is shown to the player together with its ordered answers.
type Question struct {
	Text    string   `json:"text" yaml:"text"`
	Image   string   `json:"image,omitempty" yaml:"image,omitempty"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// Result is the display content of one possible quiz outcome.
type Result struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

// QuizDefinition is the document exchanged between the authoring tool and
// the player.
type QuizDefinition struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Image       string     `json:"image,omitempty" yaml:"image,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
	Results     Results    `json:"results" yaml:"results"`
}
