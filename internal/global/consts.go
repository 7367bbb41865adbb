package global

import "time"

const (
	// Descriptive Names for available verbosity levels
	VerbosityNone int = iota
	VerbosityStandard
	VerbosityProgress
	VerbosityData
	VerbosityFullData
	VerbosityDebug

	// Descriptive names for available severity levels
	ErrorLog string = "Error"
	WarnLog  string = "Warn"
	InfoLog  string = "Info"
)

const (
	ProgName    string = "pngme"
	ProgVersion string = "v1.2.0"

	// Context keys
	LoggerKey  CtxKey = "logger"  // Event queue (mostly for variable log verbosity handling)
	LogTagsKey CtxKey = "logtags" // List of tags in order of broad->specific appended/popped at various parts of the program

	DefaultConfigDirName  string = "pngme"
	DefaultConfigFileName string = "config.toml"

	// Runtime defaults (overridable by config file)
	DefaultVerbosity        int           = VerbosityStandard
	DefaultMaxFileSize      int64         = 256 << 20
	DefaultCompressionLevel string        = "default"
	DefaultLockTimeout      time.Duration = 10 * time.Second
	DefaultLockPollInterval time.Duration = 25 * time.Millisecond
	DefaultRequireValidType bool          = true

	// Text output
	DefaultTerminalWidth int = 80
	MinPreviewWidth      int = 16

	// Namespacing Name Components
	NSTest    string = "Test"
	NSCLI     string = "CLI"
	NSEncode  string = "Encode"
	NSDecode  string = "Decode"
	NSRemove  string = "Remove"
	NSPrint   string = "Print"
	NSFile    string = "File"
	NSLock    string = "Lock"
	NSConfig  string = "Config"
	NSEnvelop string = "Envelope"
)
