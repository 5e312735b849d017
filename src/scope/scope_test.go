package scope

import (
	"errors"
	"reflect"
	"testing"
)

func TestReleaseRunsOnce(t *testing.T) {
	calls := 0
	g := New(func() { calls++ })

	g.Release()
	g.Release()

	if calls != 1 {
		t.Fatalf("Expected action to run once, ran %d times", calls)
	}
}

func TestNilAction(t *testing.T) {
	g := New(nil)
	g.Release()
}

func TestDeferredGuardsRunInReverseOrder(t *testing.T) {
	var order []string

	func() {
		defer New(func() { order = append(order, "first") }).Release()
		defer New(func() { order = append(order, "second") }).Release()
		defer New(func() { order = append(order, "third") }).Release()
	}()

	want := []string{"third", "second", "first"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
}

func TestGuardRunsOnEarlyReturn(t *testing.T) {
	released := 0
	errEarly := errors.New("early")

	run := func(fail bool) error {
		defer New(func() { released++ }).Release()
		if fail {
			return errEarly
		}
		return nil
	}

	if err := run(true); !errors.Is(err, errEarly) {
		t.Fatalf("Expected early error, got %v", err)
	}
	if err := run(false); err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if released != 2 {
		t.Fatalf("Expected 2 releases, got %d", released)
	}
}

func TestGuardRunsOnPanic(t *testing.T) {
	released := false

	func() {
		defer func() { _ = recover() }()
		defer New(func() { released = true }).Release()
		panic("boom")
	}()

	if !released {
		t.Fatal("Expected guard to run while unwinding a panic")
	}
}
