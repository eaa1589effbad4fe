package config

const (
	defaultConfigPath         = "~/.config/pacerename/config.toml"
	defaultEpisodesReference  = "episodes-reference.json"
	defaultChaptersReference  = "chapters-reference.json"
	defaultCoverPageReference = "coverpage-reference.json"
	defaultMode               = ModeMove
	defaultExtension          = ".mkv"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: ".",
			StateDir:  defaultStateDir(),
		},
		References: References{
			Episodes:   defaultEpisodesReference,
			Chapters:   defaultChaptersReference,
			CoverPages: defaultCoverPageReference,
		},
		Organize: Organize{
			Mode:       defaultMode,
			Extensions: []string{defaultExtension},
			History:    true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
