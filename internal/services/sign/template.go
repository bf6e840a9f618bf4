package sign

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"dfxid/internal/domain"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadTemplate reads signed-message metadata from a YAML file. ${VAR}
// references are expanded from the environment; unset variables expand to "".
func LoadTemplate(path string) (domain.SignedMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SignedMessage{}, fmt.Errorf("reading template: %w", err)
	}

	expanded := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})

	var msg domain.SignedMessage
	if err := yaml.Unmarshal([]byte(expanded), &msg); err != nil {
		return domain.SignedMessage{}, fmt.Errorf("parsing template %s: %w", path, err)
	}
	return msg, nil
}
