// Package cssprune removes stylesheet rules that no HTML page can use.
//
// Pruning runs in two stages connected by a plain-text class list.
//
// # Collection
//
// Gather every class referenced by class attributes in a directory of pages:
//
//	result, err := cssprune.CollectClasses(cssprune.CollectConfig{
//		HTMLDir: "html",
//		Output:  "used_classes.txt",
//	})
//
// # Pruning
//
// Keep the rules of every stylesheet in a directory that can apply to a
// listed class, drop duplicates across files and write one sorted file:
//
//	result, err := cssprune.Prune(cssprune.Config{
//		CSSDir:      "css",
//		ClassesFile: "used_classes.txt",
//		Output:      "clear.css",
//	})
//
// Files that cannot be read or parsed are skipped and reported in the
// result's Errors; missing input directories or class lists are returned as
// errors.
//
// # CLI Tool
//
// Install the command line tool with:
//
//	go install github.com/yacobolo/cssprune/cmd/cssprune@latest
package cssprune
