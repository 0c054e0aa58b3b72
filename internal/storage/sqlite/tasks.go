package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmtrv/lifebot/internal/models"
)

// CreateTask persists a new task and populates its ID.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.TaskActive
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, description, due_date, priority, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.UserID, task.Title, nullIfEmpty(task.Description), nullIfEmpty(task.DueDate),
		string(task.Priority), string(task.Status), task.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	task.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read task id: %w", err)
	}

	return nil
}

// ListActiveTasks returns the user's active tasks ordered by due date, then
// priority, mirroring the list view.
func (s *SQLiteStore) ListActiveTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, due_date, priority, status, created_at, completed_at
		 FROM tasks
		 WHERE user_id = ? AND status = 'active'
		 ORDER BY due_date, priority`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// CompleteTask transitions a task from active to completed. The WHERE clause
// carries the whole contract: wrong owner, unknown id, or an already
// completed task all leave rowcount at zero.
func (s *SQLiteStore) CompleteTask(ctx context.Context, userID, taskID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET status = 'completed', completed_at = ?
		 WHERE id = ? AND user_id = ? AND status = 'active'`,
		time.Now().Format(timeLayout), taskID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to complete task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n > 0, nil
}

// DeleteTask removes a task owned by the user.
func (s *SQLiteStore) DeleteTask(ctx context.Context, userID, taskID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?",
		taskID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n > 0, nil
}

func scanTask(rows *sql.Rows) (models.Task, error) {
	var (
		task        models.Task
		description sql.NullString
		dueDate     sql.NullString
		createdAt   sql.NullString
		completedAt sql.NullString
	)

	if err := rows.Scan(
		&task.ID, &task.UserID, &task.Title, &description, &dueDate,
		&task.Priority, &task.Status, &createdAt, &completedAt,
	); err != nil {
		return models.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}

	task.Description = description.String
	task.DueDate = dueDate.String
	task.CreatedAt = parseTime(createdAt)
	if completedAt.Valid {
		t := parseTime(completedAt)
		task.CompletedAt = &t
	}

	return task, nil
}
