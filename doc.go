// Package editorcore provides a headless, frontend-agnostic text-editing
// kernel.
//
// This package owns every piece of editor state a text-editing frontend
// needs, document text, cursor/selection, line wrapping, style intervals,
// code folding, undo/redo, find/replace, without ever touching a display,
// making it ideal for:
//   - Driving a terminal or GUI text editor from a thin rendering layer
//   - Embedding editing behavior in a language server test harness
//   - Headless editing automation and scripted text transforms
//   - Deterministic testing of editor commands without a UI
//
// # Quick Start
//
// Create a state manager and execute commands against it:
//
//	mgr := editorcore.NewStateManager("package main\n", 80)
//	mgr.Execute(editorcore.Command{Edit: editorcore.CommandInsertText{Text: "// "}})
//	grid := mgr.GetViewport(0, 24)
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [PieceTable]: append-only, amortized O(1) insert/delete text storage
//   - [LineIndex]: O(log N) offset↔(line, column) mapping
//   - [LayoutEngine]: per-line soft-wrap and tab layout
//   - [IntervalTree] / [StyleLayers]: layered style intervals with prefix-max-end pruning
//   - [FoldingManager]: two-tier user/derived code folding
//   - [CommandExecutor]: the single entry point for every edit, cursor, view, and style [Command]
//   - [UndoManager]: grouped, coalescing undo/redo history
//   - [StateManager]: version counter, change subscriptions, [DocumentProcessor] application
//
// # Command Executor
//
// CommandExecutor is the mutation boundary. Every text or selection change
// flows through Execute, which dispatches on the Command's populated
// sub-union (Edit, Cursor, View, or Style) and returns a CommandResult or a
// CommandError; a returned error never leaves partial state behind.
//
//	result, err := executor.Execute(editorcore.Command{
//	    Edit: editorcore.CommandInsert{Offset: 0, Text: "hello"},
//	})
//
// # State Manager
//
// StateManager wraps a CommandExecutor with version tracking and change
// notification so multiple observers (a renderer, a status bar, an
// autosave timer) can react to the same edit stream without polling:
//
//	mgr.Subscribe(func(change editorcore.StateChange) {
//	    log.Printf("v%d -> v%d: %v", change.OldVersion, change.NewVersion, change.ChangeType)
//	})
package editorcore
