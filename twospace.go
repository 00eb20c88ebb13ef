// ABOUTME: Main twospace package providing version information and package documentation
// ABOUTME: This is the root package for the two-space copying collector

// Package twospace is a Cheney-style two-space copying garbage collector over
// fixed-size tagged chunks. The collector lives in package heap; package graph
// analyses heap snapshots (reachability, dominators, retained size), package
// heapdump reads and writes snapshots, and package script drives a collector
// from TOML programs.
package twospace

// Version is the semantic version of the twospace tool
const Version = "0.1.0-dev"
