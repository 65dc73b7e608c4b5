package assert

import (
	"fmt"

	"github.com/bloeys/libgraphics/logging"
)

// Enabled controls whether failed checks panic. Asserts guard programmer errors
// (unknown enum values, impossible states), not bad input.
var Enabled = true

// T panics with the formatted message if check is false
func T(check bool, msg string, args ...any) {

	if !Enabled || check {
		return
	}

	msg = fmt.Sprintf(msg, args...)
	logging.ErrLog.Panicln("Assert failed:", msg)
}
