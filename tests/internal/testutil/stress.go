//go:build integration

package testutil

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"k8s.io/client-go/util/retry"
)

const (
	// StressMaxLines is the maximum number of lines echoed per connection.
	StressMaxLines = 20

	// StressMaxConns is the maximum number of connections opened per subtest.
	StressMaxConns = 5

	// defaultStressSubtests is the default number of stress subtests to run.
	defaultStressSubtests = 100

	// ioTimeout bounds every read and write against the echo server.
	ioTimeout = 10 * time.Second
)

var (
	stressSubtestsOnce  sync.Once
	stressSubtestsCount int
)

// StressSubtestCount returns the number of stress subtests to run, reading
// VTPOOL_STRESS_SUBTESTS on first call. Panics if the env var is set but invalid.
func StressSubtestCount() int {
	stressSubtestsOnce.Do(func() {
		stressSubtestsCount = defaultStressSubtests
		if v := os.Getenv("VTPOOL_STRESS_SUBTESTS"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				panic(fmt.Sprintf("invalid VTPOOL_STRESS_SUBTESTS=%q: must be a positive integer", v))
			}

			stressSubtestsCount = n
		}
	})

	return stressSubtestsCount
}

// isRetryable returns true for transient dial errors seen when many
// parallel clients overrun the listen backlog. Used as the predicate for
// retry.OnError.
func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EAGAIN)
}

// Dial connects to addr, retrying transient failures, and registers the
// connection for closing at test cleanup.
func Dial(t *testing.T, addr string) net.Conn {
	t.Helper()

	var conn net.Conn
	err := retry.OnError(retry.DefaultBackoff, isRetryable, func() error {
		c, dialErr := net.DialTimeout("tcp", addr, ioTimeout)
		if dialErr != nil {
			return dialErr
		}
		conn = c
		return nil
	})
	if err != nil {
		t.Fatalf("dial %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// EchoLines writes each line to conn and fails the test unless the same
// line comes back.
func EchoLines(t *testing.T, conn net.Conn, lines []string) {
	t.Helper()

	r := bufio.NewReader(conn)
	for _, line := range lines {
		if err := conn.SetDeadline(time.Now().Add(ioTimeout)); err != nil {
			t.Fatalf("set deadline: %v", err)
		}
		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			t.Fatalf("write %q: %v", line, err)
		}
		got, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read echo of %q: %v", line, err)
		}
		if got = strings.TrimSuffix(got, "\n"); got != line {
			t.Fatalf("echo = %q, want %q", got, line)
		}
	}
}
