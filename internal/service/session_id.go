package service

import gonanoid "github.com/matoous/go-nanoid/v2"

const sessionIDLength = 10

// newSessionID returns a short URL-safe random identifier. Collision
// resistance comes from the id space, not from a registry check.
func newSessionID() (string, error) {
	return gonanoid.New(sessionIDLength)
}
