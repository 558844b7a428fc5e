// Package ui renders command lifecycle events for people reading the console.
package ui
