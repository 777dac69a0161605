// Package config defines configuration structures for the qdfetch CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (QDFETCH_ prefix)
//   - YAML configuration file
//
// Flags override environment variables, which override the file.
//
// # Structure
//
//	type Config struct {
//	    Bucket       string // gocloud bucket URL, e.g. gs://quickdraw_dataset
//	    Prefix       string // listing prefix inside the bucket
//	    Root         string // HTTPS base for <root>/<label>.ndjson
//	    PreviewBytes int64  // last byte requested in preview mode
//	    Full         bool   // fetch whole files instead of previews
//	    DataDir      string
//	    Manifest     string
//	    Anonymous    bool
//	    LogFile      string
//	    Verbose      bool
//	    HTTP         HTTPConfig
//	}
package config
