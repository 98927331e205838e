package papergen

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Archivist is the durable question store. Writes are idempotent upserts
// keyed by each question's stable UUID, so re-archiving a batch with
// identical content is safe.
type Archivist struct {
	db *sql.DB
}

// OpenArchive opens (and pings) the question database.
func OpenArchive(dbPath string) (*Archivist, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping archive: %w", err)
	}
	return &Archivist{db: db}, nil
}

// Close closes the underlying database.
func (a *Archivist) Close() error {
	return a.db.Close()
}

// CreateTables creates the archive schema if it does not exist.
func (a *Archivist) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS generated_questions (
			id TEXT PRIMARY KEY,
			batch_key TEXT NOT NULL,
			question_number INTEGER NOT NULL,
			subject TEXT,
			blueprint TEXT,
			stem_english TEXT NOT NULL,
			options_english TEXT NOT NULL,
			stem_hindi TEXT,
			options_hindi TEXT,
			answer TEXT NOT NULL,
			review_state TEXT NOT NULL DEFAULT 'pending',
			feedback TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generated_questions_batch ON generated_questions(batch_key)`,
	}
	for _, query := range queries {
		if _, err := a.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// SaveQuestions upserts a batch of questions under the given batch key.
// Blueprints are sanitized before storage: reference-material annotations
// are session context, not archival content.
func (a *Archivist) SaveQuestions(questions []Question, batchKey string) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO generated_questions (
			id, batch_key, question_number, subject, blueprint,
			stem_english, options_english, stem_hindi, options_hindi,
			answer, review_state, feedback, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			batch_key = excluded.batch_key,
			question_number = excluded.question_number,
			subject = excluded.subject,
			blueprint = excluded.blueprint,
			stem_english = excluded.stem_english,
			options_english = excluded.options_english,
			stem_hindi = excluded.stem_hindi,
			options_hindi = excluded.options_hindi,
			answer = excluded.answer,
			review_state = excluded.review_state,
			feedback = excluded.feedback`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, q := range questions {
		optionsEnglish, err := OptionsToJSON(q.OptionsPrimary)
		if err != nil {
			return err
		}
		optionsHindi, err := OptionsToJSON(q.OptionsSecondary)
		if err != nil {
			return err
		}

		createdAt := q.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		state := q.ReviewState
		if state == "" {
			state = ReviewPending
		}

		if _, err := stmt.Exec(
			q.StableID, batchKey, q.SequenceNumber, q.Subject, SanitizePlan(q.Blueprint),
			q.StemPrimary, optionsEnglish, q.StemSecondary, optionsHindi,
			string(q.Answer), string(state), q.Feedback, createdAt,
		); err != nil {
			return fmt.Errorf("failed to save question %s: %w", q.StableID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch %s: %w", batchKey, err)
	}
	return nil
}

// QuestionsByBatchKey returns all questions of a batch, ordered by
// question number.
func (a *Archivist) QuestionsByBatchKey(batchKey string) ([]Question, error) {
	rows, err := a.db.Query(`SELECT id, question_number, subject, blueprint,
			stem_english, options_english, stem_hindi, options_hindi,
			answer, review_state, feedback, created_at
		FROM generated_questions WHERE batch_key = ? ORDER BY question_number ASC`, batchKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		var optionsEnglish, optionsHindi, answer, state string
		if err := rows.Scan(&q.StableID, &q.SequenceNumber, &q.Subject, &q.Blueprint,
			&q.StemPrimary, &optionsEnglish, &q.StemSecondary, &optionsHindi,
			&answer, &state, &q.Feedback, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if q.OptionsPrimary, err = JSONToOptions(optionsEnglish); err != nil {
			return nil, err
		}
		if q.OptionsSecondary, err = JSONToOptions(optionsHindi); err != nil {
			return nil, err
		}
		q.Answer = AnswerKey(answer)
		q.ReviewState = ReviewState(state)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return questions, nil
}

// BatchKeyExists reports whether any question was archived under the key.
func (a *Archivist) BatchKeyExists(batchKey string) (bool, error) {
	var exists bool
	err := a.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM generated_questions WHERE batch_key = ?)`, batchKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check batch key: %w", err)
	}
	return exists, nil
}

// BatchKeys returns the distinct batch keys in the archive.
func (a *Archivist) BatchKeys() ([]string, error) {
	rows, err := a.db.Query(`SELECT DISTINCT batch_key FROM generated_questions ORDER BY batch_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan batch key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch keys: %w", err)
	}
	return keys, nil
}

// MaxQuestionNumber returns the highest sequence number archived under the
// key, or 0 when the batch is empty.
func (a *Archivist) MaxQuestionNumber(batchKey string) (int, error) {
	var max sql.NullInt64
	err := a.db.QueryRow(`SELECT MAX(question_number) FROM generated_questions WHERE batch_key = ?`, batchKey).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max question number: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64), nil
}

// UpdateReviewState records a human review decision for one question.
func (a *Archivist) UpdateReviewState(stableID string, state ReviewState, feedback string) error {
	_, err := a.db.Exec(`UPDATE generated_questions SET review_state = ?, feedback = ? WHERE id = ?`,
		string(state), feedback, stableID)
	if err != nil {
		return fmt.Errorf("failed to update review state: %w", err)
	}
	return nil
}

// HistoryForDedup returns the blueprints of previously selected questions,
// used by the planner to avoid repeating them.
func (a *Archivist) HistoryForDedup() ([]string, error) {
	rows, err := a.db.Query(`SELECT blueprint FROM generated_questions WHERE review_state = ?`, string(ReviewSelected))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dedup history: %w", err)
	}
	defer rows.Close()

	var blueprints []string
	for rows.Next() {
		var bp string
		if err := rows.Scan(&bp); err != nil {
			return nil, fmt.Errorf("failed to scan blueprint: %w", err)
		}
		blueprints = append(blueprints, bp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blueprints: %w", err)
	}
	return blueprints, nil
}

// OptionsToJSON converts an options slice to its stored JSON form.
func OptionsToJSON(options []string) (string, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}
	return string(data), nil
}

// JSONToOptions converts the stored JSON form back to an options slice.
func JSONToOptions(optionsJSON string) ([]string, error) {
	var options []string
	if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	return options, nil
}
