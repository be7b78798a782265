package mdtint

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	tables  bool
	folding bool
	warn    func(string)
}

func defaultRenderConfig() renderConfig {
	return renderConfig{tables: true, folding: true}
}

// WithTables enables or disables pipe-table reformatting.
func WithTables(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.tables = enabled
	}
}

// WithFolding enables or disables folding of overlong list lines.
func WithFolding(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.folding = enabled
	}
}

// WithWarningSink routes run warnings to fn instead of dropping them.
func WithWarningSink(fn func(string)) RenderOption {
	return func(cfg *renderConfig) {
		cfg.warn = fn
	}
}
