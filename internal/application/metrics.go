package application

import "expvar"

// Counters published on /api/debug/vars.
var (
	otpIssued       = expvar.NewInt("otp_issued_total")
	otpVerified     = expvar.NewInt("otp_verified_total")
	otpRejected     = expvar.NewInt("otp_rejected_total")
	loginsSucceeded = expvar.NewInt("logins_succeeded_total")
	unverifiedPurge = expvar.NewInt("unverified_accounts_deleted_total")
	mailFailures    = expvar.NewInt("mail_send_failures_total")
	notifyFailures  = expvar.NewInt("notification_write_failures_total")
)
