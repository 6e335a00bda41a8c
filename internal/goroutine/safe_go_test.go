package goroutine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matheusgmdr7/contratando2/internal/logger"
)

func TestRecoveryHandler_RecoversPanic(t *testing.T) {
	rh := NewRecoveryHandler(logger.Component("test"))

	var wg sync.WaitGroup
	wg.Add(2)
	rh.Go(func() {
		defer wg.Done()
		panic("boom")
	})
	ran := false
	rh.Go(func() {
		defer wg.Done()
		ran = true
	})
	wg.Wait()

	assert.True(t, ran)
}

func TestInline_RunsSynchronously(t *testing.T) {
	calls := 0
	Inline{}.Go(func() { calls++ })
	Inline{}.Go(func() { panic("ignored") })
	assert.Equal(t, 1, calls)
}
