package loop

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// HookPosBeforeFrame is a hook position that triggers before a frame starts
var HookPosBeforeFrame = &HookPos{Name: "BeforeFrame"}

// HookPosAfterFrame is a hook position that triggers after a frame completes,
// before the pacing sleep
var HookPosAfterFrame = &HookPos{Name: "AfterFrame"}

// HookPosBeforeEvent is a hook position that triggers before running a
// scheduled event
var HookPosBeforeEvent = &HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent is a hook position that triggers after running a
// scheduled event
var HookPosAfterEvent = &HookPos{Name: "AfterEvent"}

// HookPosTaskError is a hook position that triggers when the per-frame task
// reports a failure
var HookPosTaskError = &HookPos{Name: "TaskError"}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase object
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.Hooks = make([]Hook, 0)
	return h
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
