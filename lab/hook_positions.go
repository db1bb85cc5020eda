package lab

import "github.com/KomalYerkal/Preparation-of-Soap/instrumentation/hooking"

// Hook positions raised by a Lab. The hook item is always the MixtureView
// after the transition.
var (
	// HookPosIngredientAdded fires when a new ingredient enters the vessel.
	// Detail is the Ingredient.
	HookPosIngredientAdded = &hooking.HookPos{Name: "IngredientAdded"}

	// HookPosReset fires after the vessel is emptied.
	HookPosReset = &hooking.HookPos{Name: "Reset"}

	// HookPosReactionStarted fires when the third ingredient arrives. Detail
	// is the timing.VTime at which the reaction completes.
	HookPosReactionStarted = &hooking.HookPos{Name: "ReactionStarted"}

	// HookPosReactionComplete fires when the delayed transition applies.
	HookPosReactionComplete = &hooking.HookPos{Name: "ReactionComplete"}

	// HookPosStaleReactionDropped fires when a completion event belonging to
	// a mixture that was reset arrives and is ignored. Detail is the
	// event's generation.
	HookPosStaleReactionDropped = &hooking.HookPos{Name: "StaleReactionDropped"}
)
