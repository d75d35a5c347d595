package convlog

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"flightdesk/internal/types"
)

func TestStoreInsertAndList(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	id := types.NewSessionID()

	for i, u := range []string{"hi", "Dhaka to Bangkok", "tomorrow"} {
		if _, err := store.Insert(ctx, Turn{SessionID: id, Utterance: u, Intent: "x", Response: "r"}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	if _, err := store.Insert(ctx, Turn{SessionID: types.NewSessionID(), Utterance: "other session"}); err != nil {
		t.Fatalf("insert other: %v", err)
	}

	turns, err := store.List(ctx, id, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(turns) != 2 || turns[0].Utterance != "Dhaka to Bangkok" || turns[1].Utterance != "tomorrow" {
		t.Fatalf("unexpected turns %+v", turns)
	}
	if turns[0].CreatedAt.IsZero() {
		t.Fatalf("created_at not defaulted")
	}
}

func TestZapSinkLogsTurn(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := NewZapSink(zap.New(core))
	if err := sink.Record(context.Background(), Turn{SessionID: "s1", Utterance: "hi", Intent: "greeting", Response: "Hello!"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	entries := logs.FilterMessage("conversation turn").All()
	if len(entries) != 1 || entries[0].ContextMap()["intent"] != "greeting" {
		t.Fatalf("unexpected log entries %+v", entries)
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("FLIGHTDESK_TEST_DSN")
	if dsn == "" {
		t.Skip("FLIGHTDESK_TEST_DSN not set; skipping DB-backed conversation log tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE conversation_turns"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return NewStore(db)
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(root, "migrations", "0001_conversation_turns.sql"))
	if err != nil {
		return err
	}
	for _, stmt := range splitSQL(stripSQLComments(string(content))) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	var out []string
	for _, p := range strings.Split(input, ";") {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
