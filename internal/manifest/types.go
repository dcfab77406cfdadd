package manifest

// Manifest is the JSON record of one batch run, written next to the
// outputs when requested. Downstream gallery tooling consumes it to map
// sources onto normalized assets without re-scanning the directory.
type Manifest struct {
	Version     int     `json:"version"`
	GeneratedAt string  `json:"generated_at"`
	InputDir    string  `json:"input_dir"`
	OutputDir   string  `json:"output_dir"`
	Format      string  `json:"format"`
	Width       int     `json:"width"`
	Quality     int     `json:"quality"`
	Entries     []Entry `json:"entries"`
	Stats       Stats   `json:"stats"`
}

// Entry describes one source file and its normalized output.
type Entry struct {
	Source      string `json:"source"`       // source filename
	SourceBytes int64  `json:"source_bytes"` // source size on disk
	Output      string `json:"output"`       // output filename
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int64  `json:"size"` // output bytes on disk
	Hash        string `json:"hash"` // xxhash64 of the output, 16 hex chars
}

// Stats aggregates run metrics.
type Stats struct {
	Files            int   `json:"files"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// DefaultFilename is the manifest name used when only a directory is given.
const DefaultFilename = "imgnorm.manifest.json"
