// Package retryctl 实现了一个有状态的重试控制器：反复调用一个可能失败的动作，
// 在尝试之间按策略等待，并把状态变化广播给观察者。
//
// 与一次性的重试循环不同，Controller 以“周期”为单位管理重试：一次 Execute
// 调用开启一个周期，周期在 success、fail 或 canceled 状态时结束，结果通过
// future 异步交付。
//
// 基本用法：
//
//	ctrl := retryctl.New[string](retryctl.Fixed(3, time.Second))
//	f := ctrl.Execute(ctx, func(ctx context.Context) (string, error) {
//	    return fetchSomething(ctx)
//	})
//	res, _ := f.Get()
//	if res.IsSuccess() {
//	    fmt.Println(res.Data())
//	}
//
// 手动模式下，控制器在每次失败的尝试后暂停，直到调用 Resume 才继续：
//
//	ctrl := retryctl.New[string](retryctl.Fixed(5, time.Second),
//	    retryctl.WithMode(retryctl.ModeManual),
//	)
//
// 支持的重试策略：
//   - Fixed: 固定间隔重试
//   - Linear: 线性增长间隔
//   - Exponential: 指数退避，可设置最大间隔
//   - Jittered / StopOn: 包装其他策略，增加抖动或按错误提前停止
package retryctl
