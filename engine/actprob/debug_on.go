//go:build actiondebug

package actprob

const debugChecks = true
