package worksheet

import (
	"fmt"
	"strings"
	"time"
)

// Level is a primary school grade tag.
type Level string

const (
	LevelP1 Level = "P1"
	LevelP2 Level = "P2"
	LevelP3 Level = "P3"
	LevelP4 Level = "P4"
	LevelP5 Level = "P5"
	LevelP6 Level = "P6"
)

// Topic is the math subject a worksheet covers.
type Topic string

const (
	TopicAddition       Topic = "Addition"
	TopicSubtraction    Topic = "Subtraction"
	TopicMultiplication Topic = "Multiplication"
	TopicDivision       Topic = "Division"
	TopicFractions      Topic = "Fractions"
	TopicDecimals       Topic = "Decimals"
	TopicGeometry       Topic = "Geometry"
	TopicWordProblems   Topic = "Word Problems"
)

// Difficulty is the requested challenge tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var (
	allLevels       = []Level{LevelP1, LevelP2, LevelP3, LevelP4, LevelP5, LevelP6}
	allTopics       = []Topic{TopicAddition, TopicSubtraction, TopicMultiplication, TopicDivision, TopicFractions, TopicDecimals, TopicGeometry, TopicWordProblems}
	allDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
)

// AllLevels returns the levels in display order.
func AllLevels() []Level { return append([]Level(nil), allLevels...) }

// AllTopics returns the topics in display order.
func AllTopics() []Topic { return append([]Topic(nil), allTopics...) }

// AllDifficulties returns the difficulties in display order.
func AllDifficulties() []Difficulty { return append([]Difficulty(nil), allDifficulties...) }

// ParseLevel resolves a level tag, ignoring case ("p3" → P3).
func ParseLevel(s string) (Level, error) {
	for _, l := range allLevels {
		if normalize(s) == normalize(string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q: must be one of P1-P6", s)
}

// ParseTopic resolves a topic name. Hyphens and underscores are accepted in
// place of spaces, so "word-problems" resolves to "Word Problems".
func ParseTopic(s string) (Topic, error) {
	for _, t := range allTopics {
		if normalize(s) == normalize(string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown topic %q", s)
}

// ParseDifficulty resolves a difficulty name, ignoring case.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range allDifficulties {
		if normalize(s) == normalize(string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q: must be Easy, Medium or Hard", s)
}

func normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}

// Selection is the (level, topic, difficulty) triple a worksheet is generated for.
type Selection struct {
	Level      Level      `json:"level"`
	Topic      Topic      `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
}

// ParseSelection resolves all three parts of a selection.
func ParseSelection(level, topic, difficulty string) (Selection, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return Selection{}, err
	}
	t, err := ParseTopic(topic)
	if err != nil {
		return Selection{}, err
	}
	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Level: l, Topic: t, Difficulty: d}, nil
}

// Validate reports whether every part of s is a known value.
func (s Selection) Validate() error {
	_, err := ParseSelection(string(s.Level), string(s.Topic), string(s.Difficulty))
	return err
}

// Title returns the worksheet title for this selection, e.g. "P3 Fractions - Medium".
func (s Selection) Title() string {
	return fmt.Sprintf("%s %s - %s", s.Level, s.Topic, s.Difficulty)
}

// Question is a single generated question. Immutable once produced.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"question"`

	Answer string `json:"answer"`

	// WorkingSteps is the optional ordered worked solution. Empty when the
	// question has no meaningful intermediate steps.
	WorkingSteps []string `json:"workingSteps,omitempty"`
}

// Worksheet is a titled set of questions for one selection. It is never
// persisted; the next generation replaces it wholesale.
type Worksheet struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Level      Level      `json:"level"`
	Topic      Topic      `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Questions  []Question `json:"questions"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Selection returns the selection the worksheet was generated for.
func (w *Worksheet) Selection() Selection {
	return Selection{Level: w.Level, Topic: w.Topic, Difficulty: w.Difficulty}
}
