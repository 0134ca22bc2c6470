package domain

// Result is the outcome of a fallible operation: either a payload or a
// DataError. The zero value is a successful Result holding the zero T.
type Result[T any] struct {
	data T
	err  DataError
}

// Success wraps data in a successful Result.
func Success[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Failure wraps err in a failed Result. A nil err is recorded as
// NetworkUnknown so that a failed Result always carries an error.
func Failure[T any](err DataError) Result[T] {
	if err == nil {
		err = NetworkUnknown
	}
	return Result[T]{err: err}
}

// IsSuccess reports whether r holds a payload.
func (r Result[T]) IsSuccess() bool { return r.err == nil }

// IsError reports whether r holds an error.
func (r Result[T]) IsError() bool { return r.err != nil }

// Data returns the payload and true on success, or the zero T and false.
func (r Result[T]) Data() (T, bool) {
	if r.err != nil {
		var zero T
		return zero, false
	}
	return r.data, true
}

// Err returns the error of a failed Result, or nil.
func (r Result[T]) Err() DataError { return r.err }

// Unwrap converts r into Go's conventional (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.data, nil
}

// MapError recategorizes the error of a failed Result. Successful results
// are returned unchanged.
func (r Result[T]) MapError(fn func(DataError) DataError) Result[T] {
	if r.err == nil {
		return r
	}
	return Failure[T](fn(r.err))
}

// OnSuccess calls fn with the payload of a successful Result and returns r.
func (r Result[T]) OnSuccess(fn func(T)) Result[T] {
	if r.err == nil {
		fn(r.data)
	}
	return r
}

// OnError calls fn with the error of a failed Result and returns r.
func (r Result[T]) OnError(fn func(DataError)) Result[T] {
	if r.err != nil {
		fn(r.err)
	}
	return r
}

// GetOrElse returns the payload, or fallback when r failed.
func (r Result[T]) GetOrElse(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.data
}

// GetOrNil returns a pointer to the payload, or nil when r failed.
func (r Result[T]) GetOrNil() *T {
	if r.err != nil {
		return nil
	}
	v := r.data
	return &v
}

// Map transforms the payload of a successful Result. fn is never called on
// a failed Result; the error is carried over unchanged.
func Map[T, R any](r Result[T], fn func(T) R) Result[R] {
	if r.err != nil {
		return Result[R]{err: r.err}
	}
	return Success(fn(r.data))
}

// FlatMap chains a dependent fallible operation, short-circuiting on the
// first error.
func FlatMap[T, R any](r Result[T], fn func(T) Result[R]) Result[R] {
	if r.err != nil {
		return Result[R]{err: r.err}
	}
	return fn(r.data)
}

// AsEmpty discards the payload, keeping only success or failure.
func AsEmpty[T any](r Result[T]) Result[struct{}] {
	return Result[struct{}]{err: r.err}
}
