// Package vulnapi provides the HTTP adapter for the remote vulnerability
// search API.
//
// The client issues a single POST per search and maps every transport and
// status failure onto a classified *domain.SearchError:
//
//   - 401 -> auth, 403 -> quota, 429 -> rate limit, other non-200 -> backend
//   - client timeout -> timeout
//   - dial / DNS failure -> connect
//   - undecodable 200 body -> unexpected
//
// It never retries.
package vulnapi
