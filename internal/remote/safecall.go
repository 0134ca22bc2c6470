package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	"dockify/internal/domain"
)

// Call performs one HTTP exchange.
type Call func(ctx context.Context) (*http.Response, error)

// Option adjusts how SafeCall maps a response.
type Option func(*callOptions)

type callOptions struct {
	status map[int]domain.DataError
}

// WithStatus maps an additional non-success status code to err. It cannot
// override the success codes.
func WithStatus(code int, err domain.DataError) Option {
	return func(o *callOptions) {
		if o.status == nil {
			o.status = make(map[int]domain.DataError)
		}
		o.status[code] = err
	}
}

// SafeCall runs call and decodes a 200, 201 or 202 body into T. Every other
// outcome becomes a DataError. Cancellation of ctx is returned as a plain
// error and never mapped.
func SafeCall[T any](ctx context.Context, call Call, opts ...Option) (domain.Result[T], error) {
	o := applyOptions(opts)

	resp, err := call(ctx)
	if err != nil {
		if canceled(ctx, err) {
			return domain.Result[T]{}, err
		}
		return domain.Failure[T](transportError(err)), nil
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		var v T
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			if canceled(ctx, err) {
				return domain.Result[T]{}, err
			}
			if isDecodeError(err) {
				return domain.Failure[T](domain.NetworkSerializationError), nil
			}
			return domain.Failure[T](transportError(err)), nil
		}
		return domain.Success(v), nil
	default:
		return domain.Failure[T](statusError(resp.StatusCode, o)), nil
	}
}

// SafeCallEmpty is SafeCall for endpoints without a response body. 204 is
// also a success.
func SafeCallEmpty(ctx context.Context, call Call, opts ...Option) (domain.Result[struct{}], error) {
	o := applyOptions(opts)

	resp, err := call(ctx)
	if err != nil {
		if canceled(ctx, err) {
			return domain.Result[struct{}]{}, err
		}
		return domain.Failure[struct{}](transportError(err)), nil
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return domain.Success(struct{}{}), nil
	default:
		return domain.Failure[struct{}](statusError(resp.StatusCode, o)), nil
	}
}

func applyOptions(opts []Option) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func statusError(code int, o callOptions) domain.DataError {
	if de, ok := o.status[code]; ok {
		return de
	}
	switch code {
	case http.StatusUnauthorized:
		return domain.AuthUnauthorized
	case http.StatusForbidden:
		return domain.AuthInvalidToken
	case http.StatusNotFound:
		return domain.NetworkUnknown
	default:
		return domain.NetworkServerError
	}
}

func canceled(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
}

func transportError(err error) domain.DataError {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NetworkRequestTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return domain.NetworkRequestTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.NetworkNoInternet
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return domain.NetworkNoInternet
	}
	return domain.NetworkUnknown
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
