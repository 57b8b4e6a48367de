package loader

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/fsnotify/fsnotify"
)

// ErrNotImage is returned by Texture.Err when a file decodes as none of the supported formats.
var ErrNotImage = errors.New("file is not a supported image")

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("loader is closed")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	baseDir        string
	maxTextureSize int
	workers        int
	queueSize      int
	idleTimeout    time.Duration

	pool   worker.DynamicWorkerPool
	taskID atomic.Int64

	textures map[string]*texture

	watcher *fsnotify.Watcher
	watched map[string]bool
	closed  bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// Loader decodes image files into textures on a pool of background workers. Load never blocks:
// it returns a Texture right away and the render loop polls it until it is ready. Textures are
// cached by resolved path. With Watch enabled, rewriting a loaded file decodes it again.
type Loader interface {
	// Load starts decoding an image, or returns the cached texture for the same path.
	// Relative paths are resolved against the loader's base directory.
	//
	// Parameters:
	//   - path: the image file path
	//
	// Returns:
	//   - Texture: the texture, possibly still decoding
	Load(path string) Texture

	// Get retrieves a cached texture without loading it.
	//
	// Parameters:
	//   - path: the image file path as passed to Load
	//
	// Returns:
	//   - Texture: the cached texture or nil
	Get(path string) Texture

	// Textures returns every cached texture keyed by resolved path.
	//
	// Returns:
	//   - map[string]Texture: a copy of the cache
	Textures() map[string]Texture

	// Reload decodes a cached texture again. Unknown paths are ignored.
	//
	// Parameters:
	//   - path: the image file path as passed to Load
	//
	// Returns:
	//   - bool: true if the texture was found and resubmitted
	Reload(path string) bool

	// Watch starts watching the directories of loaded textures, including those loaded later,
	// and reloads a texture when its file is written or replaced.
	//
	// Returns:
	//   - error: an error if the watcher cannot be created or the loader is closed
	Watch() error

	// Close stops the watcher. Decodes already queued still complete.
	//
	// Returns:
	//   - error: an error from closing the watcher
	Close() error
}

var _ Loader = &loader{}

// NewLoader creates a Loader. By default it uses two workers, a queue of 64 tasks and the
// current directory as base.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		baseDir:        ".",
		maxTextureSize: common.DefaultMaxTextureSize,
		workers:        2,
		queueSize:      64,
		idleTimeout:    5 * time.Second,
		textures:       make(map[string]*texture),
		watched:        make(map[string]bool),
		stop:           make(chan struct{}),
	}
	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, l.idleTimeout)
	return l
}

func (l *loader) Load(path string) Texture {
	resolved := l.resolve(path)

	l.mu.Lock()
	if cached, ok := l.textures[resolved]; ok {
		l.mu.Unlock()
		return cached
	}
	t := newTexture(filepath.Base(resolved), resolved)
	l.textures[resolved] = t
	l.mu.Unlock()

	if err := l.watchDir(filepath.Dir(resolved)); err != nil {
		slog.Warn("texture will not hot reload", "component", "loader", "path", resolved, "error", err)
	}
	l.submit(t)
	return t
}

func (l *loader) Get(path string) Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if t, ok := l.textures[l.resolve(path)]; ok {
		return t
	}
	return nil
}

func (l *loader) Textures() map[string]Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]Texture, len(l.textures))
	for k, t := range l.textures {
		out[k] = t
	}
	return out
}

func (l *loader) Reload(path string) bool {
	l.mu.RLock()
	t, ok := l.textures[l.resolve(path)]
	l.mu.RUnlock()
	if !ok {
		return false
	}
	l.submit(t)
	return true
}

// resolve joins relative paths to the base directory and cleans the result.
func (l *loader) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(l.baseDir, path)
}

// submit queues a decode of t on the worker pool.
func (l *loader) submit(t *texture) {
	l.pool.SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			start := time.Now()
			staging, err := decode(t.name, t.path, l.maxTextureSize)
			t.complete(staging, err)
			if err != nil {
				slog.Error("texture decode failed", "component", "loader", "path", t.path, "error", err)
				return nil, err
			}
			slog.Debug("texture decoded",
				"component", "loader",
				"path", t.path,
				"width", staging.Width,
				"height", staging.Height,
				"version", t.Version(),
				"took", time.Since(start),
			)
			return nil, nil
		},
	})
}

// decode reads and decodes one image file, mapping unknown formats to ErrNotImage.
func decode(name, path string, maxSize int) (common.TextureStagingData, error) {
	staging, err := common.TextureSource{Name: name, Path: path, MaxSize: maxSize}.Decode()
	if errors.Is(err, image.ErrFormat) {
		return staging, fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	return staging, err
}
