// Package jwt issues and verifies the access tokens handed out by the
// activation auto-login path. HS256 and Ed25519 signing are supported.
package jwt
