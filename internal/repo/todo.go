package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/dashboard-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const todoColumns = `id, title, description, body, assigned_to, completed, completed_at,
	todo_type, due_date, recurrence, last_completed_date, priority, created_at, updated_at`

type TodoRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTodoRepo(pool *pgxpool.Pool) *TodoRepo {
	return &TodoRepo{
		pool: pool,
	}
}

func (r *TodoRepo) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	t.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO todos (id, title, description, body, assigned_to, todo_type, due_date, recurrence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+todoColumns+`
	`, t.ID, t.Title, t.Description, t.Body, t.AssignedTo, t.TodoType, t.DueDate, t.Recurrence).Scan(
		&t.ID, &t.Title, &t.Description, &t.Body, &t.AssignedTo, &t.Completed, &t.CompletedAt,
		&t.TodoType, &t.DueDate, &t.Recurrence, &t.LastCompletedDate, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, r.mapError(err)
}

func (r *TodoRepo) Get(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	var t model.Todo
	err := r.pool.QueryRow(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Body, &t.AssignedTo, &t.Completed, &t.CompletedAt,
		&t.TodoType, &t.DueDate, &t.Recurrence, &t.LastCompletedDate, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TodoRepo) List(ctx context.Context, filter model.TodoFilter, limit int) ([]model.Todo, error) {
	// Сортировка: приоритет выше — запись выше, при равенстве свежие первыми
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE ($1::text IS NULL OR todo_type = $1)
		  AND ($2::boolean IS NULL OR completed = $2)
		ORDER BY priority DESC, created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, filter.Type, filter.Completed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]model.Todo, 0, limit)
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Body, &t.AssignedTo, &t.Completed, &t.CompletedAt,
			&t.TodoType, &t.DueDate, &t.Recurrence, &t.LastCompletedDate, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepo) Update(ctx context.Context, t model.Todo) (model.Todo, error) {
	err := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET title = $2, description = $3, body = $4, completed = $5, completed_at = $6,
		    todo_type = $7, due_date = $8, recurrence = $9, last_completed_date = $10,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+todoColumns+`
	`, t.ID, t.Title, t.Description, t.Body, t.Completed, t.CompletedAt,
		t.TodoType, t.DueDate, t.Recurrence, t.LastCompletedDate).Scan(
		&t.ID, &t.Title, &t.Description, &t.Body, &t.AssignedTo, &t.Completed, &t.CompletedAt,
		&t.TodoType, &t.DueDate, &t.Recurrence, &t.LastCompletedDate, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TodoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// UpdatePriorities применяет пакет приоритетов одной транзакцией —
// либо все записи, либо ни одной. Записи чужого типа считаются
// ненайденными: пакет упорядочивает ровно один раздел
func (r *TodoRepo) UpdatePriorities(ctx context.Context, todoType string, updates []model.PriorityUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range updates {
		cmd, err := tx.Exec(ctx, `
			UPDATE todos SET priority = $2, updated_at = now()
			WHERE id = $1 AND todo_type = $3
		`, u.ID, u.Priority, todoType)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrorNotFound
		}
	}

	return tx.Commit(ctx)
}

func (r *TodoRepo) SaveIdempotencyKey(ctx context.Context, key string, resourceID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO idempotency_keys (key, resource_id) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`, key, resourceID)
	return err
}

func (r *TodoRepo) GetIdempotencyKey(ctx context.Context, key string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		SELECT resource_id FROM idempotency_keys WHERE key = $1
	`, key).Scan(&id)

	if err == pgx.ErrNoRows {
		return uuid.Nil, ErrorNotFound
	}
	return id, err
}

func (r *TodoRepo) GetStats(ctx context.Context) (TodoStats, error) {
	stats := TodoStats{ByType: make(map[string]int)}

	rows, err := r.pool.Query(ctx, `
		SELECT todo_type, completed, count(*)
		FROM todos
		GROUP BY todo_type, completed
	`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var todoType string
		var completed bool
		var count int
		if err := rows.Scan(&todoType, &completed, &count); err != nil {
			return stats, err
		}
		stats.ByType[todoType] += count
		stats.Total += count
		if completed {
			stats.Completed += count
		}
	}
	return stats, rows.Err()
}

func (r *TodoRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}
