// Package embed is the client side of the webring API. A member site (or
// any Go program acting for one) uses Client to fetch its ring neighbors and
// to read or flip the visitor's widget preference, and Watch to expose the
// embed data as state that fills in once the request resolves.
//
// Requests are credentialed: the client keeps a cookie jar so the
// webring-enabled preference survives between calls. Failed requests are
// never retried; a non-2xx status comes back as *StatusError.
package embed
