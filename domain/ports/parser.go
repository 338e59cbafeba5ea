package ports

// ConfigParser parses raw configuration file bytes into a key/value tree.
type ConfigParser interface {
	// Parse unmarshals the file contents into a map.
	Parse(data []byte) (map[string]any, error)
}
