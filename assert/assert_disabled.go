//go:build wiener_noasserts

package assert

const Enabled = false

func T(check bool, msg string, args ...any) {
}
