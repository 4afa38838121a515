package tutorial_test

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"pipelined.dev/tutorial/media"
	"pipelined.dev/tutorial/mock"
)

func setup(t *testing.T, options ...mock.Option) *mock.Backend {
	t.Helper()
	b := mock.New(options...)
	require.NoError(t, media.Init(b))
	t.Cleanup(media.Deinit)
	return b
}

// testLogger records entries and exit calls instead of exiting.
type testLogger struct {
	*logrus.Logger
	hook  *test.Hook
	exits atomic.Int32
}

func newTestLogger() *testLogger {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	tl := &testLogger{Logger: l, hook: hook}
	l.ExitFunc = func(int) {
		tl.exits.Add(1)
	}
	return tl
}

// messages returns logged messages of provided level.
func (l *testLogger) messages(level logrus.Level) []string {
	var m []string
	for _, e := range l.hook.AllEntries() {
		if e.Level == level {
			m = append(m, e.Message)
		}
	}
	return m
}

func count(messages []string, message string) int {
	var n int
	for _, m := range messages {
		if m == message {
			n++
		}
	}
	return n
}

func prefixed(messages []string, prefix string) int {
	var n int
	for _, m := range messages {
		if strings.HasPrefix(m, prefix) {
			n++
		}
	}
	return n
}
