package core

// Factory is an immutable description of one transformation stage from T to
// U. A factory owns no runtime state; everything mutable for a single run
// lives in the Consumer it creates. Create receives the execution's shared
// Signal and the downstream consumer and returns the consumer for this
// stage's input.
type Factory[T, U any] interface {
	Create(sig *Signal, next Consumer[U]) Consumer[T]
}

// identityTag marks factories that forward their input unchanged. Compose
// eliminates them so an identity stage never allocates a runtime consumer.
type identityTag interface {
	identityStage()
}

type identityFactory[T any] struct{}

func (identityFactory[T]) Create(_ *Signal, next Consumer[T]) Consumer[T] { return next }
func (identityFactory[T]) identityStage()                                 {}

// Identity returns the no-op stage factory. It is the two-sided identity of
// Compose.
func Identity[T any]() Factory[T, T] { return identityFactory[T]{} }

// IsIdentity reports whether f is the no-op stage.
func IsIdentity[T, U any](f Factory[T, U]) bool {
	_, ok := f.(identityTag)
	return ok
}

type composedFactory[T, U, V any] struct {
	first  Factory[T, U]
	second Factory[U, V]
}

func (c composedFactory[T, U, V]) Create(sig *Signal, next Consumer[V]) Consumer[T] {
	return c.first.Create(sig, c.second.Create(sig, next))
}

// Compose combines two stage factories into one. Composition is associative
// and eliminates identity stages on either side.
func Compose[T, U, V any](first Factory[T, U], second Factory[U, V]) Factory[T, V] {
	if IsIdentity(first) {
		// An identity stage's input and output types coincide, so the
		// assertion cannot fail.
		return any(second).(Factory[T, V])
	}
	if IsIdentity(second) {
		return any(first).(Factory[T, V])
	}
	return composedFactory[T, U, V]{first: first, second: second}
}
