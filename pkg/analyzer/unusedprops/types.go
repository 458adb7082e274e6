package unusedprops

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"

	"github.com/zeebo/blake3"
)

// CheckID identifies this check in configuration and report output.
const CheckID = "unused-private-property"

// RegistryScope controls where constructor and interface names registered
// during traversal are visible when classifying property definitions.
type RegistryScope string

const (
	// ScopePerFile rebuilds the registry for each file from that file's own
	// declarations. This is the default.
	ScopePerFile RegistryScope = "per-file"

	// ScopeWholeCompilation registers declarations across all files first,
	// freezes the registry, then checks every file against it.
	ScopeWholeCompilation RegistryScope = "whole-compilation"
)

// ParseRegistryScope converts a configuration string to a RegistryScope.
func ParseRegistryScope(s string) (RegistryScope, error) {
	switch RegistryScope(s) {
	case ScopePerFile, "":
		return ScopePerFile, nil
	case ScopeWholeCompilation:
		return ScopeWholeCompilation, nil
	default:
		return "", fmt.Errorf("unknown registry scope %q", s)
	}
}

// Finding reports one private property that is declared but never read
// anywhere in its file.
type Finding struct {
	Check       string `json:"check" toon:"check"`
	Name        string `json:"name" toon:"name"`
	File        string `json:"file" toon:"file"`
	Line        uint32 `json:"line" toon:"line"`
	Col         uint32 `json:"col" toon:"col"`
	Message     string `json:"message" toon:"message"`
	Fingerprint string `json:"fingerprint" toon:"fingerprint"`
}

// NewFinding builds a Finding for the property name declared at the given
// position. The fingerprint is stable across unrelated edits to the file.
func NewFinding(name, file string, line, col uint32) Finding {
	return Finding{
		Check:       CheckID,
		Name:        name,
		File:        file,
		Line:        line,
		Col:         col,
		Message:     fmt.Sprintf("Private property %s is never read", name),
		Fingerprint: fingerprint(name, file, line),
	}
}

// fingerprint generates a BLAKE3 hash for deduplication across runs.
func fingerprint(name, file string, line uint32) string {
	data := CheckID + ":" + file + ":" + name + ":" + strconv.FormatUint(uint64(line), 10)
	hash := blake3.Sum256([]byte(data))
	return hex.EncodeToString(hash[:8])
}

// Summary aggregates result counts across a run.
type Summary struct {
	TotalFilesAnalyzed int            `json:"total_files_analyzed" toon:"total_files_analyzed"`
	TotalFindings      int            `json:"total_findings" toon:"total_findings"`
	ByFile             map[string]int `json:"by_file,omitempty" toon:"by_file"`
}

// NewSummary creates an initialized summary.
func NewSummary() *Summary {
	return &Summary{ByFile: make(map[string]int)}
}

// Add records a finding in the summary counts.
func (s *Summary) Add(f Finding) {
	s.TotalFindings++
	s.ByFile[f.File]++
}

// Analysis contains the full result of an unused-property run.
type Analysis struct {
	Findings []Finding `json:"findings" toon:"findings"`
	Summary  *Summary  `json:"summary" toon:"summary"`
}

// Sort orders findings by file, then line, then column, then name, so output
// is deterministic regardless of worker scheduling.
func (a *Analysis) Sort() {
	sort.Slice(a.Findings, func(i, j int) bool {
		x, y := a.Findings[i], a.Findings[j]
		if x.File != y.File {
			return x.File < y.File
		}
		if x.Line != y.Line {
			return x.Line < y.Line
		}
		if x.Col != y.Col {
			return x.Col < y.Col
		}
		return x.Name < y.Name
	})
}
