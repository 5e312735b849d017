//go:build !windows

package main

func enableDPIAwareness() string { return "not applicable" }
