// SPDX-License-Identifier: Unlicense OR MIT

package driver

import "fmt"

// ErrorCode is an EGL error as returned by eglGetError.
type ErrorCode int32

const (
	Success           ErrorCode = 0x3000
	NotInitialized    ErrorCode = 0x3001
	BadAccess         ErrorCode = 0x3002
	BadAlloc          ErrorCode = 0x3003
	BadAttribute      ErrorCode = 0x3004
	BadConfig         ErrorCode = 0x3005
	BadContext        ErrorCode = 0x3006
	BadCurrentSurface ErrorCode = 0x3007
	BadDisplay        ErrorCode = 0x3008
	BadMatch          ErrorCode = 0x3009
	BadNativePixmap   ErrorCode = 0x300a
	BadNativeWindow   ErrorCode = 0x300b
	BadParameter      ErrorCode = 0x300c
	BadSurface        ErrorCode = 0x300d
	ContextLost       ErrorCode = 0x300e
)

var errorText = map[ErrorCode]string{
	Success:           "success",
	NotInitialized:    "display not initialized",
	BadAccess:         "resource unavailable (context bound in another thread?)",
	BadAlloc:          "allocation failed",
	BadAttribute:      "unrecognized attribute or attribute value",
	BadConfig:         "invalid configuration",
	BadContext:        "invalid context",
	BadCurrentSurface: "current surface no longer valid",
	BadDisplay:        "invalid display",
	BadMatch:          "inconsistent arguments",
	BadNativePixmap:   "invalid native pixmap",
	BadNativeWindow:   "invalid native window",
	BadParameter:      "invalid parameter",
	BadSurface:        "invalid surface",
	ContextLost:       "context lost",
}

func (e ErrorCode) Error() string {
	if s, ok := errorText[e]; ok {
		return fmt.Sprintf("egl: %s (0x%x)", s, int32(e))
	}
	return fmt.Sprintf("egl: unknown error 0x%x", int32(e))
}
