// Package ui is the cloudnav terminal interface, built on Bubble Tea.
//
//   - View: a screen or modal with its own Init/Update/View
//   - BrowserView: the listing of one storage folder
//   - OverlayStack: modals drawn above the browser; the top one gets keys
//   - CreateFolderModal: asks for a new folder name and validates it live
//   - KeyHandler: single-key and SPC-leader bindings
//
// Storage calls never run inside Update; they are tea.Cmds that report back
// with messages (see app_messages.go).
package ui
