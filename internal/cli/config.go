package cli

// Config stores CLI options for a single generation run.
type Config struct {
	Input       string
	Trait       string
	Types       []string
	IgnoreTypes []string
	Output      string
	Watch       bool
	ShowVersion bool
}

// OutputFilename returns the destination file path for the generator layer.
func (c *Config) OutputFilename() string {
	return c.Output
}
