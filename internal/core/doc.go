// Package core provides the internal implementation of vtpool.
// It contains Pool (the thread pool adapter: an atomic NotStarted → Started →
// Stopped state machine that publishes a single executor handle and forwards
// Execute/Join to it), the unbounded Capacity report, and the package logger.
package core
