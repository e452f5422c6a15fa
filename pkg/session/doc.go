// Package session serialises access to a single robot shared by concurrent transports.
package session
