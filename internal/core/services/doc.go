// Package services implements the driving port interfaces.
// Services contain the core analysis logic and orchestrate
// calls to driven ports (adapters).
//
// Services never talk to the network or the filesystem directly.
package services
