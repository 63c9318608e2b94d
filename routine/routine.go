// Package routine 提供 panic 安全的函数与 goroutine 执行辅助。
package routine

// RunSafe 同步执行 fn，自动捕获并恢复 panic。
//
// 如果 fn 发生 panic，会依次调用 cleanup 函数（如果提供），panic 值会作为
// 参数传递。panic 不会向上传播，调用者可以继续执行。
func RunSafe(fn func(), cleanups ...func(r any)) {
	defer Recover(cleanups...)

	fn()
}

// GoSafe 在新的 goroutine 中异步执行 fn，panic 不会导致程序崩溃。
func GoSafe(fn func(), cleanups ...func(r any)) {
	go RunSafe(fn, cleanups...)
}

// Recover 在 defer 中使用，恢复 panic 并把 panic 值交给 cleanup 函数。
func Recover(cleanups ...func(r any)) {
	if r := recover(); r != nil {
		for _, cleanup := range cleanups {
			cleanup(r)
		}
	}
}
