// Package battlelog provides battle.LogSink implementations.
//
// Every sink here also implements pathfind.Notifier so a single value can be
// handed to both the scheduler and the path finder.
package battlelog
