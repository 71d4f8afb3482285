package threading

import (
	"sync"
	"testing"
)

func TestGoSafe(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	GoSafe(func() {
		defer wg.Done()
		panic("worker panic")
	})
	wg.Wait()
}

func TestRunSafe(t *testing.T) {
	ran := false
	RunSafe(func() {
		ran = true
		panic("boom")
	})
	if !ran {
		t.Error("function did not run")
	}
}
