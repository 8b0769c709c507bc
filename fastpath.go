package apexJSON

// skipWhitespaceFast is the pluggable fast-path hook standing in for the
// spec's SIMD-accelerated whitespace/string skipping. nil by default, in
// which case scanner.go's portable loop runs. A build can install an
// architecture-specific implementation from an init() in a build-tagged
// file without touching scanner.go; it must preserve skipPastWhitespace's
// exact semantics (only ' ', '\t', '\n', '\r' count as whitespace) and
// return the new position, which must be >= pos and <= len(data).
var skipWhitespaceFast func(data []byte, pos int) int
