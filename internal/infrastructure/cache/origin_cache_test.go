package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

func TestOriginCache_SetGet(t *testing.T) {
	c := NewOriginCache(time.Minute)
	id := uuid.New()

	_, ok := c.Get(id)
	assert.False(t, ok)

	c.Set(id, valueobject.OriginBroker)
	got, ok := c.Get(id)
	assert.True(t, ok)
	assert.Equal(t, valueobject.OriginBroker, got)
	assert.Equal(t, 1, c.Len())
}

func TestOriginCache_Expires(t *testing.T) {
	c := NewOriginCache(20 * time.Millisecond)
	id := uuid.New()
	c.Set(id, valueobject.OriginDirect)

	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get(id)
	assert.False(t, ok)
}
