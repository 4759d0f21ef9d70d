package handlers

import "expvar"

// Exposed under /api/debug/vars as "auth".
var authMetrics = expvar.NewMap("auth")

const (
	metricSignup         = "signup"
	metricLogin          = "login"
	metricLoginFailed    = "login_failed"
	metricResetRequested = "reset_requested"
	metricResetConfirmed = "reset_confirmed"
	metricLogout         = "logout"
)

func incr(name string) { authMetrics.Add(name, 1) }
