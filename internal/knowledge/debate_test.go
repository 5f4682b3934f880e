package knowledge

import (
	"testing"

	"ideaforge/internal/errors"
	"ideaforge/internal/event"
)

const testTopic = "Foundation choices for Data Storage"

func startedDebate(t *testing.T) (*Repository, *event.Bus) {
	t.Helper()
	repo, bus := newTestRepository(t)
	if err := repo.StartDebate(testTopic, "Select the storage approach"); err != nil {
		t.Fatalf("StartDebate failed: %v", err)
	}
	return repo, bus
}

func TestStartDebate(t *testing.T) {
	repo, _ := startedDebate(t)

	debate, err := repo.Debate(testTopic)
	if err != nil {
		t.Fatalf("Debate failed: %v", err)
	}
	if debate.Status != DebateActive {
		t.Errorf("Status = %q, want %q", debate.Status, DebateActive)
	}
	if debate.StartedAt.IsZero() {
		t.Error("StartedAt should be populated")
	}
}

func TestStartDebate_DuplicateActive(t *testing.T) {
	repo, _ := startedDebate(t)

	err := repo.StartDebate(testTopic, "again")
	if !errors.Is(err, errors.ErrDebateActive) {
		t.Errorf("error = %v, want ErrDebateActive", err)
	}
}

func TestContribute(t *testing.T) {
	repo, bus := startedDebate(t)

	contributions := 0
	bus.Subscribe("debate.contribution", func(e event.Event) { contributions++ })

	err := repo.Contribute(testTopic, Contribution{
		AgentID:   "foundation-1",
		AgentType: "foundation",
		Content:   "PostgreSQL covers every requirement",
	})
	if err != nil {
		t.Fatalf("Contribute failed: %v", err)
	}

	debate, _ := repo.Debate(testTopic)
	if len(debate.Contributions) != 1 {
		t.Fatalf("Contributions length = %d, want 1", len(debate.Contributions))
	}
	if debate.Contributions[0].Timestamp.IsZero() {
		t.Error("contribution timestamp should be populated")
	}
	if contributions != 1 {
		t.Errorf("debate.contribution events = %d, want 1", contributions)
	}
}

func TestContribute_UnknownTopic(t *testing.T) {
	repo, _ := newTestRepository(t)

	err := repo.Contribute("Missing", Contribution{AgentID: "a"})
	if !errors.Is(err, errors.ErrDebateNotFound) {
		t.Errorf("error = %v, want ErrDebateNotFound", err)
	}
}

func TestConcludeDebate(t *testing.T) {
	repo, bus := startedDebate(t)

	var concluded []event.DebateConcludedEvent
	bus.Subscribe("debate.concluded", func(e event.Event) {
		concluded = append(concluded, e.(event.DebateConcludedEvent))
	})

	if err := repo.Contribute(testTopic, Contribution{AgentID: "foundation-1", Content: "PostgreSQL"}); err != nil {
		t.Fatalf("Contribute failed: %v", err)
	}
	if err := repo.ConcludeDebate(testTopic, "PostgreSQL with read replicas"); err != nil {
		t.Fatalf("ConcludeDebate failed: %v", err)
	}

	debate, _ := repo.Debate(testTopic)
	if debate.Status != DebateConcluded {
		t.Errorf("Status = %q, want %q", debate.Status, DebateConcluded)
	}
	if debate.Conclusion != "PostgreSQL with read replicas" {
		t.Errorf("Conclusion = %q, want %q", debate.Conclusion, "PostgreSQL with read replicas")
	}
	if debate.ConcludedAt.IsZero() {
		t.Error("ConcludedAt should be populated")
	}
	if len(concluded) != 1 || concluded[0].Contributions != 1 {
		t.Errorf("debate.concluded events = %v, want one with 1 contribution", concluded)
	}
}

func TestConcludeDebate_Errors(t *testing.T) {
	t.Run("unknown topic", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		err := repo.ConcludeDebate("Missing", "done")
		if !errors.Is(err, errors.ErrDebateNotFound) {
			t.Errorf("error = %v, want ErrDebateNotFound", err)
		}
	})

	t.Run("no contributions", func(t *testing.T) {
		repo, _ := startedDebate(t)
		err := repo.ConcludeDebate(testTopic, "done")
		if !errors.Is(err, errors.ErrNoContributions) {
			t.Errorf("error = %v, want ErrNoContributions", err)
		}
	})

	t.Run("already concluded", func(t *testing.T) {
		repo, _ := startedDebate(t)
		if err := repo.Contribute(testTopic, Contribution{AgentID: "a", Content: "x"}); err != nil {
			t.Fatalf("Contribute failed: %v", err)
		}
		if err := repo.ConcludeDebate(testTopic, "done"); err != nil {
			t.Fatalf("first ConcludeDebate failed: %v", err)
		}

		if err := repo.ConcludeDebate(testTopic, "again"); !errors.Is(err, errors.ErrDebateConcluded) {
			t.Errorf("error = %v, want ErrDebateConcluded", err)
		}
		if err := repo.Contribute(testTopic, Contribution{AgentID: "b", Content: "late"}); !errors.Is(err, errors.ErrDebateConcluded) {
			t.Errorf("late contribution error = %v, want ErrDebateConcluded", err)
		}
	})
}

func TestDebateQueries(t *testing.T) {
	repo, _ := newTestRepository(t)

	topics := []string{"topic-a", "topic-b", "topic-c"}
	for _, topic := range topics {
		if err := repo.StartDebate(topic, ""); err != nil {
			t.Fatalf("StartDebate(%q) failed: %v", topic, err)
		}
	}
	if err := repo.Contribute("topic-b", Contribution{AgentID: "a", Content: "x"}); err != nil {
		t.Fatalf("Contribute failed: %v", err)
	}
	if err := repo.ConcludeDebate("topic-b", "done"); err != nil {
		t.Fatalf("ConcludeDebate failed: %v", err)
	}

	if got := len(repo.Debates()); got != 3 {
		t.Errorf("Debates() length = %d, want 3", got)
	}
	active := repo.ActiveDebates()
	if len(active) != 2 {
		t.Fatalf("ActiveDebates() length = %d, want 2", len(active))
	}
	if active[0].Topic != "topic-a" || active[1].Topic != "topic-c" {
		t.Errorf("active topics = [%s, %s], want start order [topic-a, topic-c]",
			active[0].Topic, active[1].Topic)
	}
	concluded := repo.ConcludedDebates()
	if len(concluded) != 1 || concluded[0].Topic != "topic-b" {
		t.Errorf("ConcludedDebates() = %v, want [topic-b]", concluded)
	}
}
