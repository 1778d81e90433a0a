package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/transaction"
)

type mockScope struct {
	executeFn func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.executeFn(ctx, fn)
}

func passthroughScope() *mockScope {
	return &mockScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func TestExecuteWithResult_Success(t *testing.T) {
	result, err := transaction.ExecuteWithResult(context.Background(), passthroughScope(), func(ctx context.Context) (string, error) {
		return "success", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %q", result)
	}
}

func TestExecuteWithResult_FnError(t *testing.T) {
	errFn := errors.New("fn error")
	result, err := transaction.ExecuteWithResult(context.Background(), passthroughScope(), func(ctx context.Context) (string, error) {
		return "", errFn
	})

	if !errors.Is(err, errFn) {
		t.Errorf("expected errFn, got %v", err)
	}
	if result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestExecuteWithResult_TransactionError(t *testing.T) {
	errTx := errors.New("transaction error")
	scope := &mockScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			// fn succeeds but the commit itself fails
			_ = fn(ctx)
			return errTx
		},
	}

	_, err := transaction.ExecuteWithResult(context.Background(), scope, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	if !errors.Is(err, errTx) {
		t.Errorf("expected errTx, got %v", err)
	}
}

func TestExecuteWithResult_StructResult(t *testing.T) {
	type Result struct {
		ID   string
		Name string
	}

	result, err := transaction.ExecuteWithResult(context.Background(), passthroughScope(), func(ctx context.Context) (Result, error) {
		return Result{ID: "123", Name: "test"}, nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != "123" || result.Name != "test" {
		t.Errorf("unexpected result: %+v", result)
	}
}
