package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

func testClient(hub *Hub, role valueobject.Role) *Client {
	return &Client{hub: hub, userID: uuid.New(), role: role, send: make(chan []byte, 4)}
}

func receive(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case raw := <-c.send:
		var got map[string]any
		require.NoError(t, json.Unmarshal(raw, &got))
		return got
	case <-time.After(time.Second):
		t.Fatal("событие не доставлено")
		return nil
	}
}

func TestHub_NotifyUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	broker := testClient(hub, valueobject.RoleBroker)
	other := testClient(hub, valueobject.RoleBroker)
	hub.Register(broker)
	hub.Register(other)

	hub.Notify(broker.userID, repository.EventProposalStatusChanged, map[string]string{"status": "aprovada"})

	got := receive(t, broker)
	assert.Equal(t, repository.EventProposalStatusChanged, got["type"])
	assert.Equal(t, "aprovada", got["data"].(map[string]any)["status"])
	assert.Len(t, other.send, 0)
}

func TestHub_NotifyRole(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	admin := testClient(hub, valueobject.RoleAdmin)
	broker := testClient(hub, valueobject.RoleBroker)
	hub.Register(admin)
	hub.Register(broker)

	hub.NotifyRole(valueobject.RoleAdmin, repository.EventProposalSigned, nil)

	assert.Equal(t, repository.EventProposalSigned, receive(t, admin)["type"])
	assert.Len(t, broker.send, 0)
	assert.Equal(t, 2, hub.ConnectedUsers())
}

func TestHub_Unregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	c := testClient(hub, valueobject.RoleBroker)
	hub.Register(c)
	hub.Unregister(c)

	assert.Eventually(t, func() bool { return hub.ConnectedUsers() == 0 }, time.Second, 10*time.Millisecond)
}
