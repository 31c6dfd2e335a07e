package config

const (
	defaultRawDir       = "~/autocut/raw"
	defaultEditedDir    = "~/autocut/edited"
	defaultInputDir     = "~/autocut/input"
	defaultOutputDir    = "~/autocut/output"
	defaultStylesDir    = "~/autocut/styles"
	defaultWorkDir      = "~/.local/share/autocut/work"
	defaultLogDir       = "~/.local/share/autocut/logs"
	defaultDatabasePath = "~/.local/share/autocut/autocut.db"
	defaultSTTCacheDir  = "~/.local/share/autocut/cache/whisper"

	defaultSTTModel          = "medium"
	defaultSTTTimeoutSeconds = 3600
	defaultWhisperBinary     = "whisper"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"

	defaultUtteranceGapMS = 500

	defaultStyleName          = "telugu_news"
	defaultMaxParallel        = 2
	defaultRetryAttempts      = 3
	defaultRetryDelaySeconds  = 2
	defaultWatchSettleSeconds = 2

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RawDir:       defaultRawDir,
			EditedDir:    defaultEditedDir,
			InputDir:     defaultInputDir,
			OutputDir:    defaultOutputDir,
			StylesDir:    defaultStylesDir,
			WorkDir:      defaultWorkDir,
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
		},
		STT: STT{
			Model:          defaultSTTModel,
			WhisperBinary:  defaultWhisperBinary,
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			CacheDir:       defaultSTTCacheDir,
			TimeoutSeconds: defaultSTTTimeoutSeconds,
		},
		Segmentation: Segmentation{
			UtteranceGapMS: defaultUtteranceGapMS,
		},
		Workflow: Workflow{
			StyleName:          defaultStyleName,
			MaxParallel:        defaultMaxParallel,
			RetryAttempts:      defaultRetryAttempts,
			RetryDelaySeconds:  defaultRetryDelaySeconds,
			WatchSettleSeconds: defaultWatchSettleSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
