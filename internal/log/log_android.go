// SPDX-License-Identifier: Unlicense OR MIT

package log

/*
#cgo LDFLAGS: -llog

#include <stdlib.h>
#include <android/log.h>
*/
import "C"

import (
	"bufio"
	"os"
	"runtime"
	"syscall"
	"unsafe"
)

// logcat truncates lines at 1023 bytes.
const maxLine = 1023

func init() {
	redirect(os.Stdout.Fd(), C.ANDROID_LOG_INFO)
	redirect(os.Stderr.Fd(), C.ANDROID_LOG_WARN)
}

// redirect replaces fd with a pipe whose lines are written to logcat.
func redirect(fd uintptr, prio C.int) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	if err := syscall.Dup3(int(w.Fd()), int(fd), syscall.O_CLOEXEC); err != nil {
		panic(err)
	}
	go func() {
		tag := C.CString("eglview")
		defer C.free(unsafe.Pointer(tag))
		lines := bufio.NewReaderSize(r, maxLine+1)
		buf := make([]byte, lines.Size()+1)
		cbuf := (*C.char)(unsafe.Pointer(&buf[0]))
		for {
			line, _, err := lines.ReadLine()
			if err != nil {
				break
			}
			n := copy(buf, line)
			buf[n] = 0
			C.__android_log_write(prio, tag, cbuf)
		}
		// w's fd was dup'ed behind the garbage collector's back; keep
		// its finalizer from closing it.
		runtime.KeepAlive(w)
	}()
}
