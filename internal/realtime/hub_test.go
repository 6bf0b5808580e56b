package realtime

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	connA := &websocket.Conn{}
	connB := &websocket.Conn{}

	hub.Register(1, connA)
	hub.Register(1, connB)
	hub.Register(2, connA)

	assert.Equal(t, 2, hub.ConnectionCount(1))
	assert.Equal(t, 1, hub.ConnectionCount(2))

	hub.Unregister(1, connA)
	assert.Equal(t, 1, hub.ConnectionCount(1))

	hub.Unregister(1, connB)
	assert.Equal(t, 0, hub.ConnectionCount(1))

	// Unregistering an unknown connection is harmless.
	hub.Unregister(1, connA)
	hub.Unregister(99, connA)
}

func TestHub_EmitToEmptyRoom(t *testing.T) {
	hub := NewHub()

	// No connections registered: emit is a silent no-op.
	hub.Emit(42, "emergency_received", map[string]string{"msg": "help"})
	assert.Equal(t, 0, hub.ConnectionCount(42))
}

// overlapDetector counts writers inside WriteMessage at the same moment.
type overlapDetector struct {
	active  int32
	overlap int32
	writes  int32
}

func (w *overlapDetector) WriteMessage(messageType int, data []byte) error {
	if atomic.AddInt32(&w.active, 1) > 1 {
		atomic.StoreInt32(&w.overlap, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&w.active, -1)
	atomic.AddInt32(&w.writes, 1)
	return nil
}

func TestHub_EmitSerializesWritesPerConnection(t *testing.T) {
	hub := NewHub()
	detector := &overlapDetector{}
	conn := &websocket.Conn{}

	hub.Register(7, conn)
	hub.rooms[7][conn] = &session{conn: detector}

	// Two alerts for one collaborator can fire at the same time; their
	// writes to the shared connection must never interleave.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Emit(7, "emergency_received", map[string]string{"msg": "help"})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&detector.overlap))
	assert.Equal(t, int32(8), atomic.LoadInt32(&detector.writes))
}
