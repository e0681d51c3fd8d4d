package log

import (
	"os"
	"syscall"
)

// redirectPanicOutput points stderr at file so runtime panics survive in the
// log directory.
func redirectPanicOutput(file *os.File) {
	syscall.Dup2(int(file.Fd()), syscall.Stderr)
}
