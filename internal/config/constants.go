package config

import "fmt"

const (
	DEFAULT_PROVIDER    = "openai"
	DEFAULT_TEMPERATURE = 0.7
	DEFAULT_MAX_TOKENS  = 500
	ENV_PREFIX          = "MENTA"
	ENV_PROVIDER        = "PROVIDER"
	ENV_MODEL           = "MODEL"
	ENV_TEMPERATURE     = "TEMPERATURE"
	ENV_MAX_TOKENS      = "MAX_TOKENS"
	ENV_LOG_FILE        = "LOG_FILE"
	ENV_DEBUG           = "DEBUG"

	// Provider secrets are read without the prefix.
	ENV_OPENAI_API_KEY    = "OPENAI_API_KEY"
	ENV_ANTHROPIC_API_KEY = "ANTHROPIC_API_KEY"
	ENV_OLLAMA_ENDPOINT   = "OLLAMA_ENDPOINT"
)

func GetEnvWithPrefix(env string) string {
	return fmt.Sprintf("%s_%s", ENV_PREFIX, env)
}
