package field

import "fmt"

// ConfigError reports a grid parameter for which the grid shape is
// undefined. Construction fails; there is no clamped fallback.
type ConfigError struct {
	Param   string
	Value   float64
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%g: %s", e.Param, e.Value, e.Message)
}
