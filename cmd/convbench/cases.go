// README: Bench cases: environment, HTTP contract, a scripted booking dialogue, and load checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg       Config
	httpc     *http.Client
	db        *pgxpool.Pool
	redis     *redis.Client
	sessionID string
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

type chatReply struct {
	SessionID string   `json:"session_id"`
	Intent    string   `json:"intent"`
	Response  string   `json:"response"`
	NextSteps []string `json:"next_steps"`
}

// scriptedTurn is one user line; wantIntent empty means any intent is accepted.
type scriptedTurn struct {
	text       string
	wantIntent string
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:       cfg,
		httpc:     &http.Client{Timeout: 90 * time.Second},
		sessionID: "bench-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	travelDate := time.Now().AddDate(0, 0, 21).Format("2006-01-02")

	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "dsn not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusFail, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass}
			},
		},
		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK),
		httpCase("API: metrics", http.MethodGet, base+"/metrics", nil, http.StatusOK),
		httpCase("Chat: missing message -> 400", http.MethodPost, base+"/api/chat", map[string]any{}, http.StatusBadRequest),
		httpCase("Chat: invalid session id -> 400", http.MethodPost, base+"/api/chat",
			map[string]any{"session_id": "../etc", "message": "hi"}, http.StatusBadRequest),
		httpCase("Session: unknown -> 404", http.MethodGet, base+"/api/sessions/never-seen-"+uuid.NewString()[:8], nil, http.StatusNotFound),
		{
			Name: "Dialogue: scripted booking",
			Run: func(ctx context.Context, r *Runner) Result {
				script := []scriptedTurn{
					{text: "Hello", wantIntent: "greeting"},
					{text: "I want to book a flight from Dhaka to Chittagong"},
					{text: "on " + travelDate + ", one way, domestic, 1 adult"},
					{text: "I'll take option 1"},
					{text: "Mr Adam Foster, male, adam@example.com, 01856684559, born 1990-04-12"},
					{text: "Confirm my booking", wantIntent: "confirm_booking"},
				}
				start := time.Now()
				var notes []string
				for _, turn := range script {
					reply, code, err := r.chat(ctx, r.sessionID, turn.text)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if code != http.StatusOK {
						return Result{Status: statusFail, Note: fmt.Sprintf("%q: status=%d", turn.text, code)}
					}
					if reply.Response == "" || reply.NextSteps == nil {
						return Result{Status: statusFail, Note: fmt.Sprintf("%q: incomplete reply", turn.text)}
					}
					if turn.wantIntent != "" && reply.Intent != turn.wantIntent {
						return Result{Status: statusFail, Note: fmt.Sprintf("%q: intent=%s want %s", turn.text, reply.Intent, turn.wantIntent)}
					}
					notes = append(notes, reply.Intent)
				}
				return Result{Status: statusPass, Latency: time.Since(start), Note: strings.Join(notes, " > ")}
			},
		},
		{
			Name: "Redis: session hash written",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				fields, err := r.redis.HGetAll(ctx, "flightdesk:session:"+r.sessionID).Result()
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if fields["version"] == "" || fields["criteria"] == "" {
					return Result{Status: statusFail, Note: fmt.Sprintf("unexpected fields %v", keys(fields))}
				}
				return Result{Status: statusPass, Note: "version=" + fields["version"]}
			},
		},
		{
			Name: "Postgres: turns logged",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				var n int
				err := r.db.QueryRow(ctx, "SELECT count(*) FROM conversation_turns WHERE session_id=$1", r.sessionID).Scan(&n)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if n == 0 {
					return Result{Status: statusFail, Note: "no turns recorded"}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("rows=%d", n)}
			},
		},
		{
			Name: "Session: read, reset, end",
			Run: func(ctx context.Context, r *Runner) Result {
				path := base + "/api/sessions/" + r.sessionID
				steps := []struct {
					method string
					url    string
					want   int
				}{
					{http.MethodGet, path, http.StatusOK},
					{http.MethodPost, path + "/reset", http.StatusOK},
					{http.MethodDelete, path, http.StatusNoContent},
					{http.MethodGet, path, http.StatusNotFound},
				}
				for _, s := range steps {
					code, _, err := r.do(ctx, s.method, s.url, nil)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if code != s.want {
						return Result{Status: statusFail, Note: fmt.Sprintf("%s %s: status=%d want %d", s.method, s.url, code, s.want)}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Concurrency: same session turns all answered",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentTurns(ctx, r)
			},
		},
		{
			Name: "Perf: greeting throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r)
			},
		},
	}
}

func httpCase(name, method, url string, body any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			code, _, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			latency := time.Since(start)
			if code != want {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d want %d", code, want)}
			}
			return Result{Status: statusPass, Latency: latency}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	return resp.StatusCode, out, err
}

func (r *Runner) chat(ctx context.Context, sessionID, text string) (chatReply, int, error) {
	code, body, err := r.do(ctx, http.MethodPost, r.cfg.BaseURL+"/api/chat",
		map[string]any{"session_id": sessionID, "message": text})
	if err != nil || code != http.StatusOK {
		return chatReply{}, code, err
	}
	var reply chatReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return chatReply{}, code, fmt.Errorf("decode reply: %w", err)
	}
	return reply, code, nil
}

// concurrentTurns fires greetings at one session in parallel; the server
// serializes them, so every request must still get a 200 or a 429.
func concurrentTurns(ctx context.Context, r *Runner) Result {
	id := "bench-conc-" + uuid.NewString()[:8]
	var ok, limited, failed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, code, err := r.chat(ctx, id, "Hello")
			switch {
			case err != nil:
				failed.Add(1)
			case code == http.StatusOK:
				ok.Add(1)
			case code == http.StatusTooManyRequests:
				limited.Add(1)
			default:
				failed.Add(1)
			}
		}()
	}
	wg.Wait()
	_, _, _ = r.do(ctx, http.MethodDelete, r.cfg.BaseURL+"/api/sessions/"+id, nil)

	note := fmt.Sprintf("ok=%d limited=%d failed=%d", ok.Load(), limited.Load(), failed.Load())
	if failed.Load() > 0 || ok.Load() == 0 {
		return Result{Status: statusFail, Note: note}
	}
	return Result{Status: statusPass, Note: note}
}

func perfLoad(ctx context.Context, r *Runner) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("bench-perf-%d-%s", i, uuid.NewString()[:8])
			for time.Now().Before(end) && ctx.Err() == nil {
				_, code, err := r.chat(ctx, id, "Hello")
				if err != nil || code != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
