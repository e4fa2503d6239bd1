package log

// ZapConfig configures the zap backed Logger.
type ZapConfig struct {
	Level        string // debug, info, warn, error
	Mode         string // "development" or "production"
	Encoding     string // "console" or "json"
	ColorEnabled bool
}

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"

	EncodingConsole = "console"
	EncodingJSON    = "json"
)

type ctxKey struct{}
