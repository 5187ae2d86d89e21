package glcore

import (
	"errors"
	"sync"
	"testing"
)

func TestContextRunInOrder(t *testing.T) {
	ctx := NewContext(APIOpenGL3, 3, 3, &Funcs{})
	defer ctx.Close()

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		if err := ctx.Run(func() error {
			got = append(got, i)
			return nil
		}); err != nil {
			t.Fatalf("Run: %v", err)
		}
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("work item %d ran out of order (got %d)", i, v)
		}
	}
}

func TestContextRunPropagatesError(t *testing.T) {
	ctx := NewContext(APIOpenGL3, 3, 3, &Funcs{})
	defer ctx.Close()

	sentinel := errors.New("boom")
	if err := ctx.Run(func() error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("Run returned %v, want %v", err, sentinel)
	}
}

func TestContextRunSerializes(t *testing.T) {
	ctx := NewContext(APIOpenGL3, 3, 3, &Funcs{})
	defer ctx.Close()

	// A plain int incremented from many goroutines only stays consistent
	// if every closure runs on the single worker thread.
	n := 0
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				ctx.Run(func() error {
					n++
					return nil
				})
			}
		}()
	}
	wg.Wait()
	if n != 800 {
		t.Errorf("counter = %d, want 800", n)
	}
}

func TestContextRunAfterClose(t *testing.T) {
	ctx := NewContext(APIOpenGL3, 3, 3, &Funcs{})
	ctx.Close()
	if err := ctx.Run(func() error { return nil }); !errors.Is(err, ErrContextClosed) {
		t.Errorf("Run after Close returned %v, want %v", err, ErrContextClosed)
	}
	// Close is idempotent.
	ctx.Close()
}

func TestContextAccessors(t *testing.T) {
	gl := &Funcs{}
	ctx := NewContext(APIGLES2, 3, 1, gl)
	defer ctx.Close()

	if ctx.API() != APIGLES2 {
		t.Errorf("API() = %v, want %v", ctx.API(), APIGLES2)
	}
	major, minor := ctx.Version()
	if major != 3 || minor != 1 {
		t.Errorf("Version() = %d.%d, want 3.1", major, minor)
	}
	if ctx.GL() != gl {
		t.Error("GL() did not return the table passed to NewContext")
	}
}
