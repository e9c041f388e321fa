// Package echoserver is a small TCP host that drives a vtpool.ThreadPool the
// way a network server does: the accept loop and every accepted connection
// run as pool tasks, and shutdown is Stop followed by Join.
//
// Connections echo newline-terminated lines back to the client until EOF or
// until the pool is stopped. Stopping cancels every task context, which
// closes the listener and all open connections, so Stop returns promptly
// even with idle clients attached.
package echoserver
