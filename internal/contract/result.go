package contract

// Result is the uniform envelope every gateway call resolves to. A call never
// surfaces a Go error past the gateway boundary: transport failures, HTTP
// error bodies and success payloads all collapse into this shape.
type Result[T any] struct {
	OK   bool   `json:"success"`
	Data T      `json:"data,omitempty"`
	Err  string `json:"error,omitempty"`
}

// Ok wraps a successful payload.
func Ok[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

// Fail wraps a failure with a user-facing message.
func Fail[T any](msg string) Result[T] {
	return Result[T]{Err: msg}
}
