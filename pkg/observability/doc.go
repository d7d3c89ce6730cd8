/*
Package observability provides tools for monitoring the tour engine.

It translates lifecycle events into Prometheus metrics and structured log
lines, and chains hook sets so one engine can feed several sinks.
*/
package observability
