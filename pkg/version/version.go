package version

// Version represents the current version of dashsearch
const Version = "1.5.0"

// BuildVersion returns the version string for display
func BuildVersion() string {
	return "dashsearch version " + Version
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}
