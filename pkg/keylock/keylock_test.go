package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	k := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("customer-1")
			counter++
			k.Unlock("customer-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	k := New()

	k.Lock("a")
	done := make(chan struct{})
	go func() {
		k.Lock("b")
		k.Unlock("b")
		close(done)
	}()
	<-done
	k.Unlock("a")
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	k := New()

	k.Lock("x")
	k.Unlock("x")

	k.mu.Lock()
	defer k.mu.Unlock()
	assert.Empty(t, k.locks)
}
