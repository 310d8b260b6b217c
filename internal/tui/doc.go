// Package tui implements the menu-driven interactive shell for the gui
// command. It is a thin Bubble Tea presentation layer over the registry and
// linker packages: a main menu, a checkbox multi-select module picker with
// filtering, a collection browser, and an unlink picker. No business logic
// lives here.
package tui
