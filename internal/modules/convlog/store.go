// README: Conversation log store backed by PostgreSQL.
package convlog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"flightdesk/internal/types"
)

const defaultListLimit = 50

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Record implements Sink.
func (s *Store) Record(ctx context.Context, t Turn) error {
	_, err := s.Insert(ctx, t)
	return err
}

func (s *Store) Insert(ctx context.Context, t Turn) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO conversation_turns (session_id, utterance, intent, response, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5::timestamptz, now()))
		RETURNING id`,
		t.SessionID.String(), t.Utterance, t.Intent, t.Response, nullTime(t),
	).Scan(&id)
	return id, err
}

// List returns the session's most recent turns in chronological order.
func (s *Store) List(ctx context.Context, id types.SessionID, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, utterance, intent, response, created_at
		FROM (
			SELECT id, session_id, utterance, intent, response, created_at
			FROM conversation_turns
			WHERE session_id = $1
			ORDER BY id DESC
			LIMIT $2
		) recent
		ORDER BY id ASC`, id.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Turn
	for rows.Next() {
		var t Turn
		var sid string
		if err := rows.Scan(&t.ID, &sid, &t.Utterance, &t.Intent, &t.Response, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.SessionID = types.SessionID(sid)
		out = append(out, t)
	}
	return out, rows.Err()
}

func nullTime(t Turn) any {
	if t.CreatedAt.IsZero() {
		return nil
	}
	return t.CreatedAt
}
