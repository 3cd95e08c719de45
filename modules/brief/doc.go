// Package brief implements the project brief intake pipeline: a
// four-part submission is sanitized, validated, screened for spam and
// turned into two transactional emails, an operator alert and a
// submitter confirmation.
//
// Service.Submit runs the pipeline and returns a Result whose Kind maps
// one-to-one onto the HTTP contract served by Service.Handle:
//
//	accepted          200 {"success":true,"id":...}
//	spam_flagged      200 {"success":false,"spam":true,...}
//	validation_error  400 {"success":false,"error":...,"fields":[...]}
//	server_error      500 {"success":false,"error":...}
//
// Outcomes are appended to an intake log (Repository) which also backs the
// duplicate-submission spam check.
package brief
