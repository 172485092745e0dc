package history

import (
	"errors"
	"testing"

	"github.com/dshills/revise/internal/engine/buffer"
)

func TestExecuteAndUndo(t *testing.T) {
	buf := buffer.FromString("a\nb\nc")
	h := New(0)

	cmd := NewSplice(2, 2, []string{"x", "y"})
	if err := h.Execute(cmd, buf); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if buf.Text() != "a\nx\ny\nc" {
		t.Errorf("expected %q, got %q", "a\nx\ny\nc", buf.Text())
	}

	if err := h.Undo(buf); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "a\nb\nc" {
		t.Errorf("undo: expected %q, got %q", "a\nb\nc", buf.Text())
	}
}

func TestRedo(t *testing.T) {
	buf := buffer.FromString("a")
	h := New(0)

	if err := h.Execute(NewSplice(1, 1, []string{"b"}), buf); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if err := h.Undo(buf); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if err := h.Redo(buf); err != nil {
		t.Fatalf("redo failed: %v", err)
	}

	if buf.Text() != "b" {
		t.Errorf("redo: expected %q, got %q", "b", buf.Text())
	}
}

func TestUndoEmpty(t *testing.T) {
	h := New(0)
	buf := buffer.FromString("a")

	if err := h.Undo(buf); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if err := h.Redo(buf); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestGroupCollapsesToOneUndo(t *testing.T) {
	buf := buffer.FromString("a\nb\nc")
	h := New(0)

	h.BeginGroup("multi edit")
	if err := h.Execute(NewSplice(1, 1, []string{"A"}), buf); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if err := h.Execute(NewSplice(3, 3, []string{"C"}), buf); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	h.EndGroup()

	if buf.Text() != "A\nb\nC" {
		t.Fatalf("expected %q, got %q", "A\nb\nC", buf.Text())
	}
	if h.UndoCount() != 1 {
		t.Fatalf("expected 1 undo entry, got %d", h.UndoCount())
	}

	if err := h.Undo(buf); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "a\nb\nc" {
		t.Errorf("single undo should restore everything, got %q", buf.Text())
	}

	if err := h.Redo(buf); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if buf.Text() != "A\nb\nC" {
		t.Errorf("single redo should reapply everything, got %q", buf.Text())
	}
}

func TestGroupSingleCommandNotWrapped(t *testing.T) {
	buf := buffer.FromString("a")
	h := New(0)

	h.BeginGroup("one")
	if err := h.Execute(NewSplice(1, 1, []string{"b"}), buf); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	h.EndGroup()

	if h.UndoCount() != 1 {
		t.Errorf("expected 1 undo entry, got %d", h.UndoCount())
	}
}

func TestCancelGroup(t *testing.T) {
	buf := buffer.FromString("a")
	h := New(0)

	h.BeginGroup("cancelled")
	if err := h.Execute(NewSplice(1, 1, []string{"b"}), buf); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	h.CancelGroup()

	if h.UndoCount() != 0 {
		t.Errorf("cancelled group should not be recorded, got %d entries", h.UndoCount())
	}
}

func TestTransaction(t *testing.T) {
	buf := buffer.FromString("a\nb")
	h := New(0)

	err := h.Transaction("txn", func() error {
		if err := h.Execute(NewSplice(1, 1, []string{"x"}), buf); err != nil {
			return err
		}
		return h.Execute(NewSplice(2, 2, []string{"y"}), buf)
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	if h.UndoCount() != 1 {
		t.Fatalf("expected 1 undo entry, got %d", h.UndoCount())
	}
	if err := h.Undo(buf); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "a\nb" {
		t.Errorf("expected %q, got %q", "a\nb", buf.Text())
	}
}

func TestTransactionError(t *testing.T) {
	_ = buffer.FromString("a")
	h := New(0)
	boom := errors.New("boom")

	err := h.Transaction("failing", func() error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if h.UndoCount() != 0 {
		t.Errorf("failed transaction should not be recorded")
	}
}

func TestGroupScopeEndTwice(t *testing.T) {
	buf := buffer.FromString("a")
	h := New(0)

	scope := h.GroupScope("scope")
	if err := h.Execute(NewSplice(1, 1, []string{"b"}), buf); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	scope.End()
	scope.End() // second call is a no-op

	if h.UndoCount() != 1 {
		t.Errorf("expected 1 undo entry, got %d", h.UndoCount())
	}
}

func TestMaxEntries(t *testing.T) {
	buf := buffer.FromString("a")
	h := New(2)

	for i := 0; i < 5; i++ {
		if err := h.Execute(NewSplice(1, 1, []string{"x"}), buf); err != nil {
			t.Fatalf("execute failed: %v", err)
		}
	}

	if h.UndoCount() != 2 {
		t.Errorf("expected 2 undo entries, got %d", h.UndoCount())
	}
}

func TestSpliceDeleteWholeBufferUndo(t *testing.T) {
	buf := buffer.FromString("a\nb")
	h := New(0)

	if err := h.Execute(NewSplice(1, 2, nil), buf); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if buf.Text() != "" {
		t.Fatalf("expected empty buffer, got %q", buf.Text())
	}

	if err := h.Undo(buf); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "a\nb" {
		t.Errorf("expected %q, got %q", "a\nb", buf.Text())
	}
}
