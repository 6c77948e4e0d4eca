package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncWriter makes bytes.Buffer safe for the spinner goroutine.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestSpinnerWritesFramesAndClears(t *testing.T) {
	w := &syncWriter{}

	stop := Start(w, "thinking")
	time.Sleep(3 * frameInterval)
	stop()

	out := w.String()
	assert.Contains(t, out, "thinking")
	assert.True(t, strings.HasSuffix(out, "\r"), "line should be cleared on stop")
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	w := &syncWriter{}
	stop := Start(w, "working")
	stop()
	stop() // must not panic or block
}
