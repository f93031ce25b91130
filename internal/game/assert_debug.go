//go:build gamedebug

package game

// assertInvariants panics on the first tick that breaks an invariant.
func assertInvariants(e *Engine) {
	if err := e.CheckInvariants(); err != nil {
		panic(err)
	}
}
