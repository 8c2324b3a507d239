// internal/repo/todo_test.go
package repo

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/dashboard-api/internal/model"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatal(err)
	}

	// Очистка
	pool.Exec(context.Background(), "TRUNCATE todos, idempotency_keys, content_audit_logs, content_reviews CASCADE")

	return pool
}

func TestTodoRepo_Create(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTodoRepo(pool)
	todo := model.Todo{Title: "Test", TodoType: model.TypePersistent, AssignedTo: "graham"}

	created, err := repo.Create(context.Background(), todo)
	if err != nil {
		t.Fatal(err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil ID")
	}
	if created.Completed {
		t.Error("expected new todo to be incomplete")
	}
	if created.Priority != 0 {
		t.Errorf("expected priority=0, got %d", created.Priority)
	}
}

func TestTodoRepo_UpdatePriorities(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTodoRepo(pool)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, title := range []string{"a", "b", "c"} {
		created, err := repo.Create(ctx, model.Todo{Title: title, TodoType: model.TypePersistent})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, created.ID)
	}

	updates := []model.PriorityUpdate{
		{ID: ids[2], Priority: 3},
		{ID: ids[0], Priority: 2},
		{ID: ids[1], Priority: 1},
	}
	if err := repo.UpdatePriorities(ctx, model.TypePersistent, updates); err != nil {
		t.Fatal(err)
	}

	todos, err := repo.List(ctx, model.TodoFilter{}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}
	if todos[0].ID != ids[2] || todos[1].ID != ids[0] || todos[2].ID != ids[1] {
		t.Error("expected list order c, a, b after reorder")
	}
}

func TestTodoRepo_UpdatePriorities_UnknownIDRollsBack(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTodoRepo(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Todo{Title: "only", TodoType: model.TypePersistent})
	if err != nil {
		t.Fatal(err)
	}

	err = repo.UpdatePriorities(ctx, model.TypePersistent, []model.PriorityUpdate{
		{ID: created.ID, Priority: 5},
		{ID: uuid.New(), Priority: 4},
	})
	if err != ErrorNotFound {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}

	// Первый апдейт не должен был зафиксироваться
	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Priority != 0 {
		t.Errorf("expected rollback to priority=0, got %d", got.Priority)
	}
}

func TestTodoRepo_UpdatePriorities_ForeignTypeRollsBack(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTodoRepo(pool)
	ctx := context.Background()

	persistent, err := repo.Create(ctx, model.Todo{Title: "persistent", TodoType: model.TypePersistent})
	if err != nil {
		t.Fatal(err)
	}
	recurring, err := repo.Create(ctx, model.Todo{Title: "recurring", TodoType: model.TypeRecurring, Recurrence: model.RecurrenceDaily})
	if err != nil {
		t.Fatal(err)
	}

	// Задача чужого типа в пакете откатывает его целиком
	err = repo.UpdatePriorities(ctx, model.TypePersistent, []model.PriorityUpdate{
		{ID: persistent.ID, Priority: 2},
		{ID: recurring.ID, Priority: 1},
	})
	if err != ErrorNotFound {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}

	for _, id := range []uuid.UUID{persistent.ID, recurring.ID} {
		got, err := repo.Get(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Priority != 0 {
			t.Errorf("expected rollback to priority=0, got %d", got.Priority)
		}
	}
}
