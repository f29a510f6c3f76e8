package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit publishes payload under name. It is a no-op until a runtime or custom
// emitter is installed, so services can run headless in tests and the TUI.
var Emit = func(ctx context.Context, name string, payload any) {}

// EnableRuntimeEmitter routes events to the Wails web view. Notices are also
// written to the runtime log.
func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, payload any) {
		runtime.EventsEmit(ctx, name, payload)
		if n, ok := payload.(NoticeEvent); ok {
			logRuntimeEvent(ctx, n)
		}
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, payload any)) {
	if f == nil {
		Emit = func(context.Context, string, any) {}
		return
	}
	Emit = f
}
