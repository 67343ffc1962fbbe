//go:build !actiondebug

package actprob

const debugChecks = false
