package worksheet

import (
	"testing"
	"time"
)

func TestSelectionTitle(t *testing.T) {
	sel := Selection{Level: LevelP3, Topic: TopicFractions, Difficulty: DifficultyMedium}
	if got := sel.Title(); got != "P3 Fractions - Medium" {
		t.Fatalf("Title() = %q, want %q", got, "P3 Fractions - Medium")
	}
}

func TestNew_CopiesSelectionAndQuestions(t *testing.T) {
	sel := Selection{Level: LevelP5, Topic: TopicWordProblems, Difficulty: DifficultyHard}
	qs := []Question{
		{ID: "q1", Text: "What is 2 + 2?", Answer: "4", WorkingSteps: []string{"2 + 2", "= 4"}},
	}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	ws, err := New(sel, qs, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.Title != "P5 Word Problems - Hard" {
		t.Errorf("unexpected title: %q", ws.Title)
	}
	if len(ws.ID) != idLength {
		t.Errorf("expected %d-char id, got %q", idLength, ws.ID)
	}
	if !ws.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", ws.CreatedAt, now)
	}
	if ws.Selection() != sel {
		t.Errorf("Selection() = %+v, want %+v", ws.Selection(), sel)
	}

	qs[0].WorkingSteps[0] = "mutated"
	if ws.Questions[0].WorkingSteps[0] != "2 + 2" {
		t.Error("worksheet questions share backing storage with the input")
	}
}

func TestNew_DistinctIDs(t *testing.T) {
	sel := Selection{Level: LevelP1, Topic: TopicAddition, Difficulty: DifficultyEasy}
	a, err := New(sel, nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(sel, nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both %q", a.ID)
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name                     string
		level, topic, difficulty string
		want                     Selection
		wantErr                  bool
	}{
		{
			name: "exact", level: "P3", topic: "Fractions", difficulty: "Medium",
			want: Selection{LevelP3, TopicFractions, DifficultyMedium},
		},
		{
			name: "case and separators", level: "p6", topic: "word-problems", difficulty: "HARD",
			want: Selection{LevelP6, TopicWordProblems, DifficultyHard},
		},
		{
			name: "underscore topic", level: "P2", topic: "word_problems", difficulty: "easy",
			want: Selection{LevelP2, TopicWordProblems, DifficultyEasy},
		},
		{name: "bad level", level: "P7", topic: "Addition", difficulty: "Easy", wantErr: true},
		{name: "bad topic", level: "P1", topic: "Algebra", difficulty: "Easy", wantErr: true},
		{name: "bad difficulty", level: "P1", topic: "Addition", difficulty: "Extreme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.level, tt.topic, tt.difficulty)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSelection() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSelection() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEnumerationSizes(t *testing.T) {
	if n := len(AllLevels()); n != 6 {
		t.Errorf("expected 6 levels, got %d", n)
	}
	if n := len(AllTopics()); n != 8 {
		t.Errorf("expected 8 topics, got %d", n)
	}
	if n := len(AllDifficulties()); n != 3 {
		t.Errorf("expected 3 difficulties, got %d", n)
	}
}

func TestNumberQuestions(t *testing.T) {
	qs := make([]Question, 3)
	NumberQuestions(qs)
	for i, want := range []string{"q1", "q2", "q3"} {
		if qs[i].ID != want {
			t.Errorf("qs[%d].ID = %q, want %q", i, qs[i].ID, want)
		}
	}
}

func TestSelectionValidate(t *testing.T) {
	ok := Selection{Level: LevelP1, Topic: TopicGeometry, Difficulty: DifficultyEasy}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []Selection{
		{},
		{Level: "P7", Topic: TopicGeometry, Difficulty: DifficultyEasy},
		{Level: LevelP1, Topic: "Algebra", Difficulty: DifficultyEasy},
		{Level: LevelP1, Topic: TopicGeometry, Difficulty: "Impossible"},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("expected %+v to be rejected", bad)
		}
	}
}
