package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/taskchat/agent/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			task_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			completed INTEGER NOT NULL DEFAULT 0,
			priority TEXT NOT NULL DEFAULT 'medium',
			due_date DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			conversation_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT 'New Conversation',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTask inserts a new task and fills in its generated ID and timestamps.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *domain.Task) error {
	now := time.Now().UTC()
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, description, completed, priority, due_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.UserID, task.Title, nullString(task.Description), task.Completed, task.Priority,
		nullTime(task.DueDate), now, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// GetTask retrieves a task owned by the given user. Returns nil when the task
// does not exist or belongs to someone else.
func (s *SQLiteStore) GetTask(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT task_id, user_id, title, description, completed, priority, due_date, created_at, updated_at
		 FROM tasks WHERE task_id = ? AND user_id = ?`, taskID, userID)
	return scanTask(row)
}

// ListTasks retrieves a user's tasks, optionally filtered by status
// ("pending" or "completed"; anything else means all).
func (s *SQLiteStore) ListTasks(ctx context.Context, userID int64, status string) ([]domain.Task, error) {
	query := `SELECT task_id, user_id, title, description, completed, priority, due_date, created_at, updated_at
		 FROM tasks WHERE user_id = ?`
	args := []interface{}{userID}

	switch status {
	case domain.StatusPending:
		query += ` AND completed = 0`
	case domain.StatusCompleted:
		query += ` AND completed = 1`
	}
	query += ` ORDER BY created_at ASC, task_id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// UpdateTask applies the non-nil fields of update to a task owned by the given
// user. Returns nil when no such task exists for that user.
func (s *SQLiteStore) UpdateTask(ctx context.Context, userID, taskID int64, update domain.TaskUpdate) (*domain.Task, error) {
	sets := []string{}
	args := []interface{}{}
	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *update.Priority)
	}
	if update.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, update.DueDate.UTC())
	}
	if len(sets) == 0 {
		return s.GetTask(ctx, userID, taskID)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, taskID, userID)

	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE task_id = ? AND user_id = ?`, args...)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetTask(ctx, userID, taskID)
}

// DeleteTask removes a task owned by the given user. Returns false when the
// task does not exist or belongs to someone else.
func (s *SQLiteStore) DeleteTask(ctx context.Context, userID, taskID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE task_id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SetTaskCompleted marks a task completed or pending. Returns nil when no such
// task exists for that user. Setting an already-set flag is a no-op that still
// returns the task.
func (s *SQLiteStore) SetTaskCompleted(ctx context.Context, userID, taskID int64, completed bool) (*domain.Task, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed = ?, updated_at = ? WHERE task_id = ? AND user_id = ?`,
		completed, time.Now().UTC(), taskID, userID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetTask(ctx, userID, taskID)
}

// CreateConversation inserts a new conversation and fills in its generated ID.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conversation *domain.Conversation) error {
	now := time.Now().UTC()
	if conversation.Title == "" {
		conversation.Title = "New Conversation"
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		conversation.UserID, conversation.Title, now, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	conversation.ID = id
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	return nil
}

// GetConversation retrieves a conversation owned by the given user.
func (s *SQLiteStore) GetConversation(ctx context.Context, userID, conversationID int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, user_id, title, created_at, updated_at
		 FROM conversations WHERE conversation_id = ? AND user_id = ?`,
		conversationID, userID).
		Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations retrieves all conversations owned by the given user,
// newest first.
func (s *SQLiteStore) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id, user_id, title, created_at, updated_at
		 FROM conversations WHERE user_id = ? ORDER BY created_at DESC, conversation_id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

// CreateMessage inserts a new message and fills in its generated ID.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	now := message.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		message.ConversationID, message.Role, message.Content, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	message.ID = id
	message.CreatedAt = now
	return nil
}

// GetLatestMessages retrieves the most recent messages of a conversation,
// returned in chronological order.
func (s *SQLiteStore) GetLatestMessages(ctx context.Context, conversationID int64, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, conversation_id, role, content, created_at
		 FROM messages WHERE conversation_id = ?
		 ORDER BY created_at DESC, message_id DESC LIMIT ?`,
		conversationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func scanTask(row *sql.Row) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var dueDate sql.NullTime
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &description, &task.Completed,
		&task.Priority, &dueDate, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if description.Valid {
		task.Description = description.String
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}
	return &task, nil
}

func scanTaskRow(rows *sql.Rows) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var dueDate sql.NullTime
	if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &description, &task.Completed,
		&task.Priority, &dueDate, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		task.Description = description.String
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}
	return &task, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
