package morphism

// Compose returns g ∘ f
func Compose[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(x A) C {
		return g(f(x))
	}
}

// Identity returns its argument unchanged
func Identity[T any](x T) T {
	return x
}

// VerifyIsomorphism reports whether f∘g is the identity on b and g∘f is the identity on a
func VerifyIsomorphism[A, B comparable](f func(A) B, g func(B) A, a A, b B) bool {
	return f(g(b)) == b && g(f(a)) == a
}

// VerifyIsomorphismFunc is VerifyIsomorphism for types that need a custom equality
func VerifyIsomorphismFunc[A, B any](f func(A) B, g func(B) A, a A, b B, eqA func(A, A) bool, eqB func(B, B) bool) bool {
	return eqB(f(g(b)), b) && eqA(g(f(a)), a)
}
