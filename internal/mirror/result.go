package mirror

// Result is the outcome of a mutation. Mutations never return a Go error
// across the public boundary; failures are carried here as a human-readable
// message.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func failure[T any](err error) Result[T] {
	return Result[T]{Error: err.Error()}
}
