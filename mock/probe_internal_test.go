package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamsOf(t *testing.T) {
	tests := []struct {
		mime     string
		expected []string
		err      bool
	}{
		{mime: "video/webm", expected: []string{"video/x-raw", "audio/x-raw"}},
		{mime: "video/mp4", expected: []string{"video/x-raw", "audio/x-raw"}},
		{mime: "audio/wav", expected: []string{"audio/x-raw"}},
		{mime: "image/png", expected: []string{"video/x-raw"}},
		{mime: "text/plain; charset=utf-8", expected: []string{"text/x-raw"}},
		{mime: "application/zip", err: true},
	}
	for _, test := range tests {
		t.Run(test.mime, func(t *testing.T) {
			streams, err := streamsOf(test.mime)
			if test.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			var names []string
			for _, c := range streams {
				s, _ := c.Structure(0)
				names = append(names, s.Name)
			}
			assert.Equal(t, test.expected, names)
		})
	}
}
