package config

const (
	LogErrorColor = "\033[31m"
	LogWarnColor  = "\033[33m"
	LogInfoColor  = "\033[32m"
	LogDebugColor = "\033[90m"
	LogColorReset = "\033[0m"
)

// Color constants for per-component logger prefixes
const (
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorPurple  = "\033[95m"
	ColorReset   = "\033[0m"
)
