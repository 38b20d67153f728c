package config

import (
	"github.com/spf13/viper"

	"github.com/tesgen/tes/pkg/generator"
	"github.com/tesgen/tes/pkg/ignore"
	"github.com/tesgen/tes/pkg/manifest"
)

// SetDefaults registers the built-in value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input.src", "")
	v.SetDefault("input.file", "")
	v.SetDefault("input.output", "")
	v.SetDefault("input.targets", []string{})
	v.SetDefault("input.include", []string{})
	v.SetDefault("input.ignore_files", ignore.DefaultPatternFiles)
	v.SetDefault("input.skip_companions", true)

	v.SetDefault("generation.libraries", "")
	v.SetDefault("generation.model", generator.DefaultModel)
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.requests_per_minute", generator.DefaultRequestsPerMinute)
	v.SetDefault("generation.manifest", manifest.DefaultPath)
	v.SetDefault("generation.fake", false)

	v.SetDefault("run.workers", 1)
	v.SetDefault("run.dry_run", false)
	v.SetDefault("run.json", false)
}

// envBindings lists, per key, the variables consulted in priority order.
// npm_config_* are what `npm run tes --file=x` exports.
var envBindings = map[string][]string{
	"input.src":                      {"TES_INPUT_SRC", "npm_config_src"},
	"input.file":                     {"TES_INPUT_FILE", "npm_config_file"},
	"input.output":                   {"TES_INPUT_OUTPUT", "npm_config_output"},
	"input.targets":                  {"TES_INPUT_TARGETS", "npm_config_targets"},
	"generation.libraries":           {"TES_GENERATION_LIBRARIES", "npm_config_libraries"},
	"generation.api_key":             {"TES_GENERATION_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"generation.model":               {"TES_GENERATION_MODEL", "GEMINI_MODEL"},
	"generation.requests_per_minute": {"TES_GENERATION_REQUESTS_PER_MINUTE", "GEMINI_RPM"},
}

// BindEnvVars binds keys that have legacy or provider variable names.
// Other keys are reachable through AutomaticEnv as TES_<SECTION>_<KEY>.
func BindEnvVars(v *viper.Viper) {
	for key, names := range envBindings {
		_ = v.BindEnv(append([]string{key}, names...)...)
	}
}
