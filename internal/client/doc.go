// Package client talks to the notes HTTP API on behalf of the command-line
// tool. It attaches the cached bearer token, maps every failure onto an
// *APIError with a stable code, persists the session to a YAML file and
// filters notes locally.
package client
