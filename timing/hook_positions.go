package timing

import "github.com/KomalYerkal/Preparation-of-Soap/instrumentation/hooking"

var (
	// HookPosBeforeEvent is triggered right before an event reaches its
	// handler. The hook item is the *ScheduledEvent.
	HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

	// HookPosAfterEvent is triggered after the handler returns.
	HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}
)
