// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware wraps election handlers with logging, CORS, and JSON plumbing.

WithLogging records the status the handler wrote through a status recorder.
A handler that never calls WriteHeader is logged as 200. Each request
produces one "request completed" line:

	method, path, status, client_ip, duration_ms

Responses of 500 and above are logged at error level, everything else at info.

CORS echoes the request Origin (or "*" when absent), answers OPTIONS
preflights itself, and allows the two credential headers the API reads:
X-Admin-Key for admins and X-Voter-Token for voters.

GetClientIP takes the first entry of X-Forwarded-For, then X-Real-IP, then
the host part of RemoteAddr. A RemoteAddr without a port is returned as is.

ErrorResponse writes models.ErrorResponse with the status text in "error"
and the caller's message in "message":

	middleware.ErrorResponse(w, http.StatusConflict, "election is open")
*/
package middleware
