//go:build !dev

package component

import (
	"fmt"

	"github.com/vireact/core/reactive"
)

// callHookTrapped invokes a lifecycle hook in production mode: panics are
// recovered and routed through reactive.Dispatch instead of crashing the
// process, matching ForgeLogic-nojs/nojs/runtime/renderer_prod.go's
// recover-and-log callOnMount/callOnParametersSet/callOnUnmount under the
// !dev build tag (spec §7's lifecycle-hook-threw entry).
func callHookTrapped(vm *Instance, name string, fn func(vm *Instance)) {
	defer func() {
		if r := recover(); r != nil {
			reactive.DispatchFor(fmt.Errorf("%s hook panic: %v", name, r), vm, reactive.ErrorLifecycleHook)
		}
	}()
	fn(vm)
}
