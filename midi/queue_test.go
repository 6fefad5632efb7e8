package midi

import (
	"bytes"
	"sync"
	"testing"
)

func TestQueueOrder(t *testing.T) {
	q := NewQueue()
	q.Push([]byte{0x90, 60, 100})
	q.Push([]byte{0x80, 60, 0})
	q.Push(nil) // ignored

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	first, _ := q.Next()
	second, _ := q.Next()
	if first[0] != 0x90 || second[0] != 0x80 {
		t.Errorf("got % X then % X", first, second)
	}
	if _, ok := q.Next(); ok {
		t.Error("Next on empty queue returned a message")
	}
}

func TestQueueCopiesInput(t *testing.T) {
	q := NewQueue()
	msg := []byte{0x90, 60, 100}
	q.Push(msg)
	msg[1] = 61

	got, _ := q.Next()
	if !bytes.Equal(got, []byte{0x90, 60, 100}) {
		t.Errorf("queued message aliased caller buffer: % X", got)
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push([]byte{0xB0, 64, 127})
			}
		}()
	}
	wg.Wait()
	n := 0
	for {
		if _, ok := q.Next(); !ok {
			break
		}
		n++
	}
	if n != 800 {
		t.Errorf("drained %d messages, want 800", n)
	}
}
