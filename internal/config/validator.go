package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is bumped whenever .env.example gains a required key
const ExpectedEnvSchemaVersion = "1.0"

const envSchemaVersionKey = "ENV_SCHEMA_VERSION"

// envRequirement describes one required variable and what makes it weak
type envRequirement struct {
	key         string
	placeholder string
	minLen      int
	hint        string
}

var envRequirements = []envRequirement{
	{key: "DB_USER"},
	{key: "DB_PASSWORD", placeholder: "change_this_secure_password", hint: "use a real database password"},
	{key: "DB_HOST"},
	{key: "DB_PORT"},
	{key: "DB_NAME"},
	{key: "API_KEY", placeholder: "generate_with_openssl_rand_hex_32", minLen: 32, hint: "generate one with: openssl rand -hex 32"},
	{key: "REPLAY_HASH_KEY", placeholder: "generate_with_openssl_rand_hex_32", minLen: 32, hint: "generate one with: openssl rand -hex 32"},
}

// RequiredEnvVars lists the variables ValidateEnv insists on
func RequiredEnvVars() []string {
	keys := make([]string, 0, len(envRequirements)+1)
	keys = append(keys, envSchemaVersionKey)
	for _, req := range envRequirements {
		keys = append(keys, req.key)
	}
	return keys
}

// ValidateEnv fails on a stale .env file or any missing required variable
func ValidateEnv() error {
	switch v := os.Getenv(envSchemaVersionKey); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("%s is not set, add it to your .env file (expected %s)", envSchemaVersionKey, ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("%s mismatch: expected %s, got %s; compare your .env with .env.example", envSchemaVersionKey, ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, req := range envRequirements {
		if os.Getenv(req.key) == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports secrets that are
// still the .env.example placeholder or too short to resist guessing.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, req := range envRequirements {
		val := os.Getenv(req.key)
		switch {
		case req.placeholder != "" && val == req.placeholder:
			warnings = append(warnings, fmt.Sprintf("%s is still the example value, %s", req.key, req.hint))
		case len(val) < req.minLen:
			warnings = append(warnings, fmt.Sprintf("%s is shorter than %d characters, %s", req.key, req.minLen, req.hint))
		}
	}
	return warnings, nil
}
