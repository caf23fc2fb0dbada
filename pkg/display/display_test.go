package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type counter struct {
	n int64
}

func (c *counter) Display(w io.Writer) bool {
	fmt.Fprintf(w, "count %d\n", atomic.AddInt64(&c.n, 1))
	return true
}

type lockedBuilder struct {
	mu sync.Mutex
	b  strings.Builder
}

func (l *lockedBuilder) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func TestDisplay(t *testing.T) {
	var out lockedBuilder
	c := &counter{}
	d := New(c, time.Millisecond, &out)
	go d.Run()
	require.Eventually(t, func() bool { return atomic.LoadInt64(&c.n) >= 3 }, time.Second, time.Millisecond)
	d.Close()
	n := atomic.LoadInt64(&c.n)
	out.mu.Lock()
	defer out.mu.Unlock()
	require.Contains(t, out.b.String(), fmt.Sprintf("count %d", n))
}
