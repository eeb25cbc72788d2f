package polyglot

// ResultState enumerates the phases of a namespace load.
type ResultState int

const (
	StateLoading ResultState = iota
	StateLoaded
	StateFailed
)

func (s ResultState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the observable state of one (language, namespace) pair: either
// still loading, loaded with a bundle, or failed with an error. Consumers
// switch on State before using the bundle; T degrades to returning the key
// itself while the bundle is not loaded, so accidental early use shows a raw
// key instead of crashing.
type Result struct {
	state  ResultState
	bundle *Bundle
	err    error
}

// LoadingResult is the state of a pair whose load has not completed.
func LoadingResult() Result {
	return Result{state: StateLoading}
}

// LoadedResult wraps a resolved bundle.
func LoadedResult(b *Bundle) Result {
	return Result{state: StateLoaded, bundle: b}
}

// FailedResult wraps a load error.
func FailedResult(err error) Result {
	return Result{state: StateFailed, err: err}
}

// State returns the load phase.
func (r Result) State() ResultState {
	return r.state
}

// Bundle returns the resolved bundle when the result is loaded.
func (r Result) Bundle() (*Bundle, bool) {
	return r.bundle, r.state == StateLoaded
}

// Err returns the load error when the result is failed.
func (r Result) Err() error {
	return r.err
}

// T translates a dotted key path with interpolation. It returns the key
// verbatim unless the result is loaded and the key resolves.
func (r Result) T(key string, params map[string]any) string {
	if r.state != StateLoaded {
		return key
	}
	return r.bundle.T(key, params)
}
