// Package api provides the HTTP interface for uploading and querying
// bureau reports.
//
// Routes:
//
//	POST /api/upload             multipart field "file", one XML report
//	GET  /api/reports            summaries, newest first (?limit=&offset=)
//	GET  /api/reports/{id}       full report
//	GET  /api/reports/pan/{pan}  most recent report for a PAN
//	GET  /healthz                liveness
//
// Failures respond with {"error", "reason", "details"} where reason is one
// of the Reason constants.
package api
