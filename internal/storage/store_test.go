package storage

import (
	"database/sql"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordRound(t *testing.T) {
	s := newTestStore(t)
	scores := []ScoreRow{{Nic: "alice", Points: 2}, {Nic: "bob", Points: 1}}
	id, err := s.RecordRound(0, "Warlords and Scumbags", "alice", scores)
	if err != nil {
		t.Fatalf("record round: %v", err)
	}
	if id == "" {
		t.Fatal("expected round id")
	}

	row, err := s.GetRound(id)
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	if row.Room != 0 || row.Game != "Warlords and Scumbags" || row.Winner != "alice" {
		t.Fatalf("unexpected round: %+v", row)
	}
	if row.FinishedAt.IsZero() {
		t.Fatal("expected non-zero FinishedAt")
	}
	if len(row.Scores) != 2 || row.Scores[0] != scores[0] || row.Scores[1] != scores[1] {
		t.Fatalf("expected scores in order, got %+v", row.Scores)
	}
}

func TestRecordRoundIDsAreUnique(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.RecordRound(0, "g", "x", nil)
	b, _ := s.RecordRound(0, "g", "x", nil)
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
}

func TestGetRoundNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRound("nonexistent")
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListRoundsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.RecordRound(1, "g", "first", nil)
	s.RecordRound(1, "g", "second", []ScoreRow{{Nic: "second", Points: 1}})
	s.RecordRound(2, "g", "elsewhere", nil)
	s.RecordRound(1, "g", "third", nil)

	rows, err := s.ListRounds(1, 0)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rows))
	}
	for i, want := range []string{"third", "second", "first"} {
		if rows[i].Winner != want {
			t.Fatalf("round %d: expected %s, got %s", i, want, rows[i].Winner)
		}
	}
	if len(rows[1].Scores) != 1 || rows[1].Scores[0].Points != 1 {
		t.Fatalf("expected scores loaded, got %+v", rows[1].Scores)
	}
	if rows[0].Scores == nil {
		t.Fatal("expected empty, non-nil scores")
	}
}

func TestListRoundsLimit(t *testing.T) {
	s := newTestStore(t)
	for range 5 {
		s.RecordRound(0, "g", "w", nil)
	}
	rows, err := s.ListRounds(0, 2)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rows))
	}
}

func TestListRoundsEmptyRoom(t *testing.T) {
	s := newTestStore(t)
	rows, err := s.ListRounds(7, 10)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rounds, got %d", len(rows))
	}
}
