package core

import (
	"runtime"
	"strings"
)

// CallerTarget returns the import path of the package containing the
// function skip frames above CallerTarget's caller, e.g.
// "github.com/acme/app/internal/store". It is the default target of
// unnamed loggers. An empty string is returned if the frame is unknown.
func CallerTarget(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	return PackagePath(fn.Name())
}

// PackagePath strips the function part from a fully qualified function name
// as reported by runtime.Func.Name:
//
//	github.com/acme/app/store.(*DB).Get.func1 -> github.com/acme/app/store
//	main.main                                 -> main
func PackagePath(funcName string) string {
	slash := strings.LastIndexByte(funcName, '/')
	dot := strings.IndexByte(funcName[slash+1:], '.')
	if dot < 0 {
		return funcName
	}
	return funcName[:slash+1+dot]
}
