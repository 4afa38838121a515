package mock

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"pipelined.dev/tutorial/log"
	"pipelined.dev/tutorial/media"
)

// sniffLen is the number of leading bytes used to detect the container.
const sniffLen = 3072

// containers hold both audio and video streams.
var containers = map[string]bool{
	"video/webm":       true,
	"video/x-matroska": true,
	"video/mp4":        true,
	"video/quicktime":  true,
	"video/ogg":        true,
	"video/x-msvideo":  true,
	"video/mpeg":       true,
	"video/x-flv":      true,
	"video/3gpp":       true,
}

var (
	decodedVideoFormat = map[string]interface{}{
		"format":    "I420",
		"width":     854,
		"height":    480,
		"framerate": "24/1",
	}
	decodedAudioFormat = map[string]interface{}{
		"format":   "S16LE",
		"layout":   "interleaved",
		"rate":     48000,
		"channels": 2,
	}
)

func newClient(l logrus.FieldLogger) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.RetryWaitMin = 50 * time.Millisecond
	c.RetryWaitMax = 500 * time.Millisecond
	c.Logger = log.Printf{FieldLogger: l}
	return c
}

// probe returns the mime type of the resource at uri.
func (b *Backend) probe(ctx context.Context, uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	var r io.ReadCloser
	switch u.Scheme {
	case "http", "https":
		r, err = b.open(ctx, uri)
	case "file":
		r, err = os.Open(u.Path)
	default:
		return "", fmt.Errorf("no source for protocol %q", u.Scheme)
	}
	if err != nil {
		return "", err
	}
	defer r.Close()
	m, err := mimetype.DetectReader(io.LimitReader(r, sniffLen))
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

func (b *Backend) open(ctx context.Context, uri string) (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", sniffLen-1))
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %s", uri, resp.Status)
	}
	return resp.Body, nil
}

// streamsOf returns caps of every elementary stream the container of
// provided mime type holds.
func streamsOf(mime string) ([]media.Caps, error) {
	base, _, _ := strings.Cut(mime, ";")
	video := media.NewCaps("video/x-raw", decodedVideoFormat)
	audio := media.NewCaps("audio/x-raw", decodedAudioFormat)
	switch {
	case containers[base]:
		return []media.Caps{video, audio}, nil
	case strings.HasPrefix(base, "audio/"):
		return []media.Caps{audio}, nil
	case strings.HasPrefix(base, "video/"), strings.HasPrefix(base, "image/"):
		return []media.Caps{video}, nil
	case strings.HasPrefix(base, "text/"):
		return []media.Caps{media.NewCaps("text/x-raw", map[string]interface{}{"format": "utf8"})}, nil
	}
	return nil, fmt.Errorf("no decoder available for type %q", base)
}
