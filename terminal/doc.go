// Package terminal runs an interactive byte-stream session against an open
// serial channel.
//
// Each step of the loop drains whatever the channel has buffered and writes
// it to the display, then, in write mode, transmits at most one queued
// console line. Between steps the loop sleeps for the session tick unless
// the channel reports new data or the console delivers a line first.
// Cancellation comes from the context handed to Run or Start.
package terminal
