// Package storage writes export files into the configured output directory.
//
// Files are written atomically: data goes to a temporary file that is
// renamed into place only after the encoder succeeds, so a failed export
// never leaves a truncated CSV behind. Existing .csv and .xlsx files are
// scanned on start so callers can warn before overwriting one.
//
// Usage:
//
//	manager, err := storage.NewManager(cfg.Output.Directory)
//	if err != nil {
//	    return err
//	}
//	path, err := manager.Save("leetcode_results.csv", func(w io.Writer) error {
//	    return export.WriteCSV(w, results)
//	})
package storage
