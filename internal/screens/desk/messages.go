package desk

import "github.com/abhisek/internsim/internal/game"

// scenarioLoadedMsg carries a provider result back to the Update loop.
// Results for an outdated ticket are dropped by the controller.
type scenarioLoadedMsg struct {
	result game.Result
}
