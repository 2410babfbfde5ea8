package flowfield

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// logf writes a diagnostic line to stderr. Failures that reach it degrade
// rendering (missing image, fallback color) but never halt it.
func logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[flowfield] "+format+"\n", args...)
}

// bgResult carries one finished load back to the game loop.
type bgResult struct {
	src   string
	img   image.Image
	err   error
	token int
}

// backgroundLoader runs image loads in fire-and-forget goroutines and
// hands decoded images back over a channel polled from Update. A token
// invalidates results from loads that were superseded before finishing.
type backgroundLoader struct {
	ch    chan bgResult
	token int
}

func newBackgroundLoader() *backgroundLoader {
	return &backgroundLoader{ch: make(chan bgResult, 4)}
}

// load starts an asynchronous load of src, superseding any load still in
// flight.
func (l *backgroundLoader) load(src string) {
	l.token++
	token := l.token
	go func() {
		img, err := decodeImageSource(src)
		l.ch <- bgResult{src: src, img: img, err: err, token: token}
	}()
}

// poll drains finished loads. It reports handled=true when the current
// load resolved this frame; img is nil when the load failed (the image is
// then treated as absent).
func (l *backgroundLoader) poll() (img *ebiten.Image, handled bool) {
	for {
		select {
		case res := <-l.ch:
			if res.token != l.token {
				continue // superseded
			}
			if res.err != nil {
				logf("background image %q: %v", res.src, res.err)
				return nil, true
			}
			// Conversion to a GPU image happens here, on the game loop.
			return ebiten.NewImageFromImage(res.img), true
		default:
			return nil, handled
		}
	}
}

// decodeImageSource fetches and decodes an image from a base64 data URI,
// an http(s) URL, or a local file path.
func decodeImageSource(src string) (image.Image, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		idx := strings.Index(src, "base64,")
		if idx < 0 {
			return nil, fmt.Errorf("data URI is not base64-encoded")
		}
		raw, err := base64.StdEncoding.DecodeString(src[idx+len("base64,"):])
		if err != nil {
			return nil, fmt.Errorf("decode data URI: %w", err)
		}
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return img, nil

	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(src)
		if err != nil {
			return nil, fmt.Errorf("fetch image: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch image: %s", resp.Status)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return img, nil

	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return img, nil
	}
}
