package loader

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// texture is the implementation of the Texture interface.
type texture struct {
	mu sync.RWMutex

	name string
	path string

	staging common.TextureStagingData
	err     error

	// version counts successful decodes; 0 until the first one lands.
	version atomic.Uint64

	// done is closed once the first decode attempt finishes, successful or not.
	done     chan struct{}
	doneOnce sync.Once
}

// Texture is an image decoded off the render thread. It is handed out immediately by
// Loader.Load and becomes ready once a worker finishes decoding it. Hot reloads bump the
// version so consumers can re-upload.
type Texture interface {
	// Name returns the file name the texture was loaded from.
	//
	// Returns:
	//   - string: the base name, e.g. "moon.jpg"
	Name() string

	// Path returns the resolved file path.
	//
	// Returns:
	//   - string: the path that was decoded
	Path() string

	// Ready reports whether decoded pixels are available.
	//
	// Returns:
	//   - bool: true after the first successful decode
	Ready() bool

	// Staging returns the decoded pixels. The zero value is returned before Ready.
	//
	// Returns:
	//   - common.TextureStagingData: RGBA pixels, top row first
	Staging() common.TextureStagingData

	// Err returns the error of the most recent decode attempt, nil on success.
	//
	// Returns:
	//   - error: the decode error
	Err() error

	// Version returns the number of successful decodes. It increases on every hot reload.
	//
	// Returns:
	//   - uint64: the current version, 0 before the first decode
	Version() uint64

	// Done returns a channel closed once the first decode attempt has finished.
	//
	// Returns:
	//   - <-chan struct{}: the completion channel
	Done() <-chan struct{}

	// Wait blocks until the first decode attempt finishes or ctx ends.
	//
	// Parameters:
	//   - ctx: bounds the wait
	//
	// Returns:
	//   - error: the decode error, or ctx.Err() if the context ended first
	Wait(ctx context.Context) error
}

var _ Texture = &texture{}

func newTexture(name, path string) *texture {
	return &texture{
		name: name,
		path: path,
		done: make(chan struct{}),
	}
}

func (t *texture) Name() string {
	return t.name
}

func (t *texture) Path() string {
	return t.path
}

func (t *texture) Ready() bool {
	return t.version.Load() > 0
}

func (t *texture) Staging() common.TextureStagingData {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.staging
}

func (t *texture) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *texture) Version() uint64 {
	return t.version.Load()
}

func (t *texture) Done() <-chan struct{} {
	return t.done
}

func (t *texture) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// complete records a decode result. A failed reload keeps the previously decoded pixels so
// a half-written file never blanks a texture that was already showing.
func (t *texture) complete(staging common.TextureStagingData, err error) {
	t.mu.Lock()
	t.err = err
	if err == nil {
		t.staging = staging
		t.version.Add(1)
	}
	t.mu.Unlock()

	t.doneOnce.Do(func() { close(t.done) })
}
