//go:build !gamedebug

package game

func assertInvariants(*Engine) {}
