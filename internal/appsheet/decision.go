package appsheet

// decision.go makes the retry/fallback precedence explicit.
//
// The AppSheet API has three uncooperative failure modes: transient server
// errors, login-wall redirects, and "200 with an empty body" (the request
// was accepted but the credential was not recognized in the placement it
// was sent). Rather than burying the handling in nested control flow, a
// pure decision function maps each observed outcome to an action, and the
// placement/domain order is a first-class table.

import "net/http"

// action is the verdict for one observed response.
type action int

const (
	// accept: 200 with a non-empty body; parse and return it.
	accept action = iota
	// retrySame: transient failure; retry the same placement after backoff.
	retrySame
	// advanceVariant: empty-200 signature; try the next credential
	// placement (and eventually the fallback domain).
	advanceVariant
	// redirect: 3xx; fail immediately, never follow.
	redirect
	// reject: any other status; fail with diagnostics.
	reject
)

// classify maps (status, body length, transport error) to an action.
func classify(status, bodyLen int, transportErr bool) action {
	switch {
	case transportErr:
		return retrySame
	case status == http.StatusTooManyRequests,
		status == http.StatusInternalServerError,
		status == http.StatusBadGateway,
		status == http.StatusServiceUnavailable:
		return retrySame
	case status >= 300 && status < 400:
		return redirect
	case status == http.StatusOK && bodyLen == 0:
		return advanceVariant
	case status == http.StatusOK:
		return accept
	default:
		return reject
	}
}

// placement is one credential-transmission strategy.
type placement int

const (
	// placementBoth sends the key as a header and as a query parameter.
	placementBoth placement = iota
	placementHeader
	placementQuery
	placementHeaderAssignment
)

func (p placement) String() string {
	switch p {
	case placementBoth:
		return "header+query"
	case placementHeader:
		return "header"
	case placementQuery:
		return "query"
	case placementHeaderAssignment:
		return "header-assignment"
	default:
		return "unknown"
	}
}

// fallbackPlacements is the order tried after the combined placement comes
// back with an empty 200 on the primary domain. On the fallback domain the
// combined placement is retried first, then the same sequence.
var fallbackPlacements = []placement{placementHeader, placementQuery, placementHeaderAssignment}
