package dto

type PluginInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
	Formats []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type Card struct {
	Front string
	Back  string
}

type ParseInput struct {
	Format string
	Raw    string
}

type ParseOutput struct {
	Plugin string
	Format string
	Cards  []Card
}
