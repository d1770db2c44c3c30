// Package search holds the repository search domain types and the Controller
// that drives the request lifecycle.
//
// A Controller tracks exactly one in-flight request. Issuing a new one
// cancels the previous request's context, and a response is applied only if
// its request handle is still the current one, so a slow, superseded response
// can never replace a newer result.
package search
