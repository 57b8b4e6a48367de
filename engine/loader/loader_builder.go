package loader

import "time"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithBaseDir sets the directory relative texture paths are resolved against.
//
// Parameters:
//   - dir: the base directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the base directory to a loader
func WithBaseDir(dir string) LoaderBuilderOption {
	return func(l *loader) {
		if dir != "" {
			l.baseDir = dir
		}
	}
}

// WithWorkers sets how many decodes may run at once.
//
// Parameters:
//   - n: the worker count, values below 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithQueueSize sets how many decodes may wait for a free worker.
//
// Parameters:
//   - n: the queue capacity, values below 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: a function that applies the queue size to a loader
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// WithIdleTimeout sets how long an idle worker lingers before exiting.
func WithIdleTimeout(d time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		if d > 0 {
			l.idleTimeout = d
		}
	}
}

// WithMaxTextureSize caps the longest texture edge. Larger images are downscaled on decode.
//
// Parameters:
//   - px: the maximum edge in pixels, values below 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: a function that applies the size cap to a loader
func WithMaxTextureSize(px int) LoaderBuilderOption {
	return func(l *loader) {
		if px > 0 {
			l.maxTextureSize = px
		}
	}
}
