package detector

// Ecosystem identifies one of the supported language/toolchain families
type Ecosystem string

const (
	// EcosystemUnknown is the zero value, returned when no marker matched
	EcosystemUnknown Ecosystem = ""

	EcosystemCPP    Ecosystem = "cpp"
	EcosystemRust   Ecosystem = "rust"
	EcosystemGo     Ecosystem = "go"
	EcosystemPython Ecosystem = "python"
)

// Ecosystems returns all supported ecosystems in detection priority order
// (native/compiled before managed)
func Ecosystems() []Ecosystem {
	return []Ecosystem{EcosystemCPP, EcosystemRust, EcosystemGo, EcosystemPython}
}

// DisplayName returns a human-readable name for the ecosystem
func (e Ecosystem) DisplayName() string {
	switch e {
	case EcosystemCPP:
		return "C/C++"
	case EcosystemRust:
		return "Rust"
	case EcosystemGo:
		return "Go"
	case EcosystemPython:
		return "Python"
	default:
		return "Unknown"
	}
}

// ParseEcosystem converts a string tag to an Ecosystem
func ParseEcosystem(s string) (Ecosystem, bool) {
	for _, e := range Ecosystems() {
		if string(e) == s {
			return e, true
		}
	}
	return EcosystemUnknown, false
}

// Detection represents the result of ecosystem detection.
// It is computed fresh on every call and never cached: manifests may change
// between CI runs.
type Detection struct {
	Ecosystem Ecosystem         `json:"ecosystem"`
	Manifest  string            `json:"manifest,omitempty"`
	Marker    string            `json:"marker,omitempty"`
	Signals   []string          `json:"signals"`
	Meta      map[string]string `json:"meta,omitempty"`

	// Populated only when no marker matched, for diagnostics
	ManifestsScanned []string `json:"manifests_scanned,omitempty"`
	MarkersTried     []string `json:"markers_tried,omitempty"`
}

// Detected reports whether a supported ecosystem was resolved
func (d Detection) Detected() bool {
	return d.Ecosystem != EcosystemUnknown
}
