//go:build !wiener_noasserts

// Package assert holds checks for programmer errors, such as an unknown enum
// value or a reused uniform buffer field id. Failing checks panic.
//
// Building with the wiener_noasserts tag turns every check into a no-op.
package assert

import (
	"fmt"

	"github.com/wienergl/wiener/logging"
)

const Enabled = true

func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	logging.ErrLog.Panicln("Assert failed: " + msg)
}
