package constants

const (
	Version        = `0.1.0`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.pick/`

	DefaultEditor = `nvim`

	// DefaultPreviewCacheMB bounds the preview snapshot cache per session.
	DefaultPreviewCacheMB = 50

	// DefaultPreviewFileKB caps how large a single file the preview loads.
	DefaultPreviewFileKB = 512

	// MinWidthForPreview is the terminal width below which the preview
	// pane is not rendered.
	MinWidthForPreview = 80
)
