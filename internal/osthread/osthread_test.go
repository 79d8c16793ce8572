package osthread

import (
	"runtime"
	"testing"
)

func TestLockIsStable(t *testing.T) {
	done := make(chan [2]int)
	go func() {
		defer runtime.UnlockOSThread()
		first := Lock()
		runtime.Gosched()
		done <- [2]int{first, id()}
	}()
	ids := <-done
	if ids[0] != ids[1] {
		t.Errorf("thread id changed from %d to %d while locked", ids[0], ids[1])
	}
}
