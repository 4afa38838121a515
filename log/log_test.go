package log_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"pipelined.dev/tutorial/log"
)

func TestGetLogger(t *testing.T) {
	l := log.GetLogger()
	assert.NotNil(t, l)
	assert.Contains(t, []logrus.Level{logrus.InfoLevel, logrus.DebugLevel}, l.GetLevel())
}

func TestPrintf(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)

	log.Printf{FieldLogger: l}.Printf("[DEBUG] %s %s", "GET", "http://localhost")
	if assert.Len(t, hook.AllEntries(), 1) {
		assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
		assert.Equal(t, "[DEBUG] GET http://localhost", hook.LastEntry().Message)
	}
}
